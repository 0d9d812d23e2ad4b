package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/aitiwari/aisearch/internal/config"
)

type stubEngine struct {
	name     string
	priority int
	enabled  bool
	results  []SearchResult
	err      error
	calls    int
}

func (e *stubEngine) Name() string    { return e.name }
func (e *stubEngine) Type() string    { return "stub" }
func (e *stubEngine) IsEnabled() bool { return e.enabled }
func (e *stubEngine) Priority() int   { return e.priority }

func (e *stubEngine) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return &SearchResponse{Query: query, Results: e.results, Engine: e.name}, nil
}

func newStubManager(t *testing.T, engines ...*stubEngine) *Manager {
	t.Helper()
	m, err := NewManager(config.SearchConfig{}, NewRegistry())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	for _, e := range engines {
		m.engines[e.name] = e
	}
	return m
}

func TestManagerSearchFallsBackInPriorityOrder(t *testing.T) {
	failing := &stubEngine{name: "first", priority: 1, enabled: true, err: fmt.Errorf("boom")}
	working := &stubEngine{name: "second", priority: 2, enabled: true,
		results: []SearchResult{{Title: "hit", URL: "https://example.com"}}}
	m := newStubManager(t, failing, working)

	resp, err := m.Search(context.Background(), "q", 4)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Engine != "second" {
		t.Fatalf("expected fallback engine, got %q", resp.Engine)
	}
	if failing.calls != 1 {
		t.Fatalf("expected failing engine tried first, calls=%d", failing.calls)
	}
}

func TestManagerSearchPrefersPrimaryEngine(t *testing.T) {
	lowPriority := &stubEngine{name: "preferred", priority: 9, enabled: true,
		results: []SearchResult{{Title: "hit"}}}
	highPriority := &stubEngine{name: "other", priority: 1, enabled: true,
		results: []SearchResult{{Title: "other hit"}}}
	m := newStubManager(t, lowPriority, highPriority)
	m.primaryEngine = "preferred"

	resp, err := m.Search(context.Background(), "q", 4)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Engine != "preferred" {
		t.Fatalf("expected primary engine, got %q", resp.Engine)
	}
	if highPriority.calls != 0 {
		t.Fatalf("expected other engine untouched, calls=%d", highPriority.calls)
	}
}

func TestManagerSearchEmptyResultsIsNotAnError(t *testing.T) {
	first := &stubEngine{name: "first", priority: 1, enabled: true}
	second := &stubEngine{name: "second", priority: 2, enabled: true}
	m := newStubManager(t, first, second)

	resp, err := m.Search(context.Background(), "nothing matches this", 4)
	if err != nil {
		t.Fatalf("zero hits should not be an error: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected empty results, got %#v", resp.Results)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("expected every engine tried, calls=%d/%d", first.calls, second.calls)
	}
}

func TestManagerSearchEmptyBeatsPartialFailure(t *testing.T) {
	failing := &stubEngine{name: "first", priority: 1, enabled: true, err: fmt.Errorf("boom")}
	empty := &stubEngine{name: "second", priority: 2, enabled: true}
	m := newStubManager(t, failing, empty)

	resp, err := m.Search(context.Background(), "q", 4)
	if err != nil {
		t.Fatalf("an engine succeeded with zero hits, expected no error: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected empty results, got %#v", resp.Results)
	}
}

func TestManagerSearchAllFailed(t *testing.T) {
	m := newStubManager(t, &stubEngine{name: "only", priority: 1, enabled: true, err: fmt.Errorf("down")})

	if _, err := m.Search(context.Background(), "q", 4); err == nil {
		t.Fatalf("expected error when every engine fails")
	}
}

func TestManagerSkipsKeyedEngineWithoutKey(t *testing.T) {
	cfg := config.SearchConfig{
		PrimaryEngine: "duckduckgo",
		Engines: []config.SearchEngineConfig{
			{Name: "duckduckgo", Type: "duckduckgo", Enabled: true, Priority: 1},
			{Name: "tavily", Type: "tavily", Enabled: true, Priority: 2},
		},
	}
	m, err := NewManager(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	names := m.ListEngines()
	if len(names) != 1 || names[0] != "duckduckgo" {
		t.Fatalf("expected only duckduckgo, got %v", names)
	}
}
