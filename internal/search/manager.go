package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/aitiwari/aisearch/internal/config"
)

// Manager holds the configured engines and picks one per request, falling
// back through enabled engines in priority order.
type Manager struct {
	registry      *Registry
	engines       map[string]Engine
	primaryEngine string
	mu            sync.RWMutex
}

func NewManager(cfg config.SearchConfig, registry *Registry) (*Manager, error) {
	m := &Manager{
		registry:      registry,
		engines:       make(map[string]Engine),
		primaryEngine: cfg.PrimaryEngine,
	}

	for _, engineCfg := range cfg.Engines {
		if !engineCfg.Enabled {
			continue
		}
		// keyed engines stay out of the pool until a key is configured
		if engineTypeNeedsKey(engineCfg.Type) && engineCfg.APIKey == "" {
			continue
		}
		engine, err := registry.CreateEngine(Config{
			Name:     engineCfg.Name,
			Type:     engineCfg.Type,
			APIKey:   engineCfg.APIKey,
			BaseURL:  engineCfg.BaseURL,
			Enabled:  engineCfg.Enabled,
			Priority: engineCfg.Priority,
			Options:  engineCfg.Options,
		})
		if err != nil {
			return nil, err
		}
		m.engines[engineCfg.Name] = engine
	}

	return m, nil
}

func engineTypeNeedsKey(engineType string) bool {
	return engineType == "tavily"
}

func (m *Manager) AddEngine(config Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	engine, err := m.registry.CreateEngine(config)
	if err != nil {
		return err
	}

	m.engines[config.Name] = engine
	return nil
}

func (m *Manager) ListEngines() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.engines))
	for name := range m.engines {
		names = append(names, name)
	}
	return names
}

// Search runs the query against the enabled engines in priority order,
// preferring the configured primary engine, and returns the first non-empty
// response. When every engine succeeds with zero hits the empty response is
// returned as-is: no results is a valid outcome, not an error.
func (m *Manager) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	engines := m.orderedEngines()
	if len(engines) == 0 {
		return nil, fmt.Errorf("no available search engine")
	}

	var lastErr error
	var empty *SearchResponse
	for _, engine := range engines {
		resp, err := engine.Search(ctx, query, limit)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Results) > 0 {
			return resp, nil
		}
		empty = resp
	}

	if empty != nil {
		return empty, nil
	}
	return nil, lastErr
}

func (m *Manager) SearchWithEngine(ctx context.Context, engineName, query string, limit int) (*SearchResponse, error) {
	m.mu.RLock()
	engine, ok := m.engines[engineName]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("engine not found: %s", engineName)
	}

	return engine.Search(ctx, query, limit)
}

// SearchImages delegates to the highest-priority engine that supports image
// search.
func (m *Manager) SearchImages(ctx context.Context, query string, limit int) (*ImageResponse, error) {
	for _, engine := range m.orderedEngines() {
		if searcher, ok := engine.(ImageSearcher); ok {
			return searcher.SearchImages(ctx, query, limit)
		}
	}
	return nil, fmt.Errorf("no engine supports image search")
}

// orderedEngines returns enabled engines sorted by priority, with the
// primary engine first regardless of its priority.
func (m *Manager) orderedEngines() []Engine {
	m.mu.RLock()
	defer m.mu.RUnlock()

	engines := make([]Engine, 0, len(m.engines))
	for _, e := range m.engines {
		if e.IsEnabled() {
			engines = append(engines, e)
		}
	}

	for i := range engines {
		for j := i + 1; j < len(engines); j++ {
			if engines[i].Priority() > engines[j].Priority() {
				engines[i], engines[j] = engines[j], engines[i]
			}
		}
	}

	if primary, ok := m.engines[m.primaryEngine]; ok && primary.IsEnabled() {
		out := []Engine{primary}
		for _, e := range engines {
			if e.Name() != m.primaryEngine {
				out = append(out, e)
			}
		}
		return out
	}

	return engines
}

func (m *Manager) SetPrimaryEngine(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.engines[name]; !ok {
		return fmt.Errorf("engine not found: %s", name)
	}

	m.primaryEngine = name
	return nil
}
