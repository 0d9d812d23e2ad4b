package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Search   SearchConfig   `yaml:"search"`
	Research ResearchConfig `yaml:"research"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LLMConfig configures the completion provider. The API key is a secret and
// must never be logged.
type LLMConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// SearchEngineConfig configures a single search engine.
type SearchEngineConfig struct {
	Name     string                 `yaml:"name"`
	Type     string                 `yaml:"type"`
	APIKey   string                 `yaml:"api_key,omitempty"`
	BaseURL  string                 `yaml:"base_url,omitempty"`
	Enabled  bool                   `yaml:"enabled"`
	Priority int                    `yaml:"priority"`
	Options  map[string]interface{} `yaml:"options,omitempty"`
}

type SearchConfig struct {
	PrimaryEngine string               `yaml:"primary_engine"`
	Engines       []SearchEngineConfig `yaml:"engines"`
}

// ResearchConfig configures the retrieval pipeline.
type ResearchConfig struct {
	ImageCount     int  `yaml:"image_count"`
	SSRFProtection bool `yaml:"ssrf_protection"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{},
		Search: SearchConfig{
			PrimaryEngine: "duckduckgo",
			Engines: []SearchEngineConfig{
				{
					Name:     "duckduckgo",
					Type:     "duckduckgo",
					Enabled:  true,
					Priority: 1,
				},
				{
					Name:     "tavily",
					Type:     "tavily",
					Enabled:  true,
					Priority: 2,
				},
			},
		},
		Research: ResearchConfig{
			ImageCount:     6,
			SSRFProtection: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".aisearch.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}
