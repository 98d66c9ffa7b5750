// Package config provides configuration loading for agrod.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the agrod daemon.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Knowledge KnowledgeConfig `koanf:"knowledge"`
	Website   WebsiteConfig   `koanf:"website"`
	WebSearch WebSearchConfig `koanf:"websearch"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is the provider type: "fastembed" or "tei".
	Provider string `koanf:"provider"`
	// Model is the embedding model name.
	Model string `koanf:"model"`
	// BaseURL is the remote inference URL (TEI provider only).
	BaseURL string `koanf:"base_url"`
	// APIKey is the optional key for the remote provider.
	APIKey Secret `koanf:"api_key"`
	// CacheDir is the model cache directory (FastEmbed provider only).
	CacheDir string `koanf:"cache_dir"`
	// Timeout bounds a single embedding call.
	Timeout Duration `koanf:"timeout"`
}

// KnowledgeConfig holds knowledge base settings.
type KnowledgeConfig struct {
	// DatabasePath is the SQLite file backing the document store.
	DatabasePath string `koanf:"database_path"`
	// SeedOnStart ingests website snapshots and static knowledge at startup.
	SeedOnStart bool `koanf:"seed_on_start"`
}

// WebsiteConfig points at the farm application backend.
type WebsiteConfig struct {
	BaseURL string   `koanf:"base_url"`
	Timeout Duration `koanf:"timeout"`
}

// WebSearchConfig configures the web search provider.
type WebSearchConfig struct {
	// BaseURL is the search provider endpoint. Defaults to the
	// DuckDuckGo HTML endpoint.
	BaseURL string `koanf:"base_url"`
	// MaxResults caps hits fetched per provider call.
	MaxResults int `koanf:"max_results"`
	Timeout    Duration `koanf:"timeout"`
	// RatePerMinute limits provider calls. Zero disables limiting.
	RatePerMinute int `koanf:"rate_per_minute"`
}

// LoggingConfig holds logger settings consumed by internal/logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// NewDefaultConfig returns config with production-ready defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8390,
		},
		Embedding: EmbeddingConfig{
			Provider: "fastembed",
			Model:    "sentence-transformers/all-MiniLM-L6-v2",
			Timeout:  Duration(30 * time.Second),
		},
		Knowledge: KnowledgeConfig{
			DatabasePath: "farm_knowledge.db",
			SeedOnStart:  true,
		},
		Website: WebsiteConfig{
			BaseURL: "http://localhost:3001",
			Timeout: Duration(10 * time.Second),
		},
		WebSearch: WebSearchConfig{
			BaseURL:       "https://html.duckduckgo.com/html/",
			MaxResults:    10,
			Timeout:       Duration(15 * time.Second),
			RatePerMinute: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Embedding.Provider != "fastembed" && c.Embedding.Provider != "tei" {
		return fmt.Errorf("embedding.provider must be 'fastembed' or 'tei', got %q", c.Embedding.Provider)
	}
	if c.Embedding.Provider == "tei" && c.Embedding.BaseURL == "" {
		return fmt.Errorf("embedding.base_url is required for the tei provider")
	}
	if c.Knowledge.DatabasePath == "" {
		return fmt.Errorf("knowledge.database_path is required")
	}
	if c.Website.BaseURL == "" {
		return fmt.Errorf("website.base_url is required")
	}
	if c.WebSearch.MaxResults <= 0 {
		return fmt.Errorf("websearch.max_results must be > 0, got %d", c.WebSearch.MaxResults)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
