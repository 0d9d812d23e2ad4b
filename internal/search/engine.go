package search

import "context"

type Engine interface {
	Name() string
	Type() string
	Search(ctx context.Context, query string, limit int) (*SearchResponse, error)
	IsEnabled() bool
	Priority() int
}

// ImageSearcher is implemented by engines that also support image search.
type ImageSearcher interface {
	SearchImages(ctx context.Context, query string, limit int) (*ImageResponse, error)
}

type EngineFactory func(config Config) (Engine, error)

// Config configures a single search engine instance.
type Config struct {
	Name     string                 `yaml:"name"`
	Type     string                 `yaml:"type"`
	APIKey   string                 `yaml:"api_key,omitempty"`
	BaseURL  string                 `yaml:"base_url,omitempty"`
	Enabled  bool                   `yaml:"enabled"`
	Priority int                    `yaml:"priority"`
	Options  map[string]interface{} `yaml:"options,omitempty"`
}
