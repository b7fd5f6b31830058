// Package config provides hierarchical configuration loading for the
// gateway. Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the gateway process.
type Config struct {
	Server  Server  `yaml:"server"`
	Ollama  Ollama  `yaml:"ollama"`
	Search  Search  `yaml:"search"`
	Tools   Tools   `yaml:"tools"`
	Library Library `yaml:"library"`
	Cache   Cache   `yaml:"cache"`
	Logging Logging `yaml:"logging"`
	Breaker Breaker `yaml:"breaker"`
}

// Server holds HTTP server configuration.
type Server struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
	StaticDir  string `yaml:"static_dir"`
}

// Ollama holds inference backend configuration.
type Ollama struct {
	URL           string        `yaml:"url"`
	ChatTimeout   time.Duration `yaml:"chat_timeout"`
	HealthTimeout time.Duration `yaml:"health_timeout"`
}

// Search holds web-search provider configuration.
type Search struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// Tools holds security-tool probe configuration.
type Tools struct {
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	OutputLimit  int           `yaml:"output_limit"`
}

// Library holds agent-library storage and import configuration.
type Library struct {
	Dir           string        `yaml:"dir"`
	ImportTimeout time.Duration `yaml:"import_timeout"`
	UserAgent     string        `yaml:"user_agent"`
}

// Cache holds in-process cache sizing.
type Cache struct {
	MaxSizeMB int64 `yaml:"max_size_mb"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Breaker holds circuit breaker configuration for the inference backend.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Defaults returns a Config with sensible default values for local use.
func Defaults() Config {
	return Config{
		Server: Server{
			Host:       "0.0.0.0",
			Port:       "4173",
			CORSOrigin: "*",
			StaticDir:  "web",
		},
		Ollama: Ollama{
			URL:           "http://127.0.0.1:11434",
			ChatTimeout:   90 * time.Second,
			HealthTimeout: 5 * time.Second,
		},
		Search: Search{
			BaseURL:   "https://duckduckgo.com",
			UserAgent: "Mozilla/5.0",
			Timeout:   10 * time.Second,
			CacheTTL:  time.Minute,
		},
		Tools: Tools{
			ProbeTimeout: 15 * time.Second,
			OutputLimit:  1200,
		},
		Library: Library{
			Dir:           "agent-library",
			ImportTimeout: 20 * time.Second,
			UserAgent:     "Mozilla/5.0",
		},
		Cache: Cache{
			MaxSizeMB: 8,
		},
		Logging: Logging{
			Level:   "info",
			Service: "openbobs-gateway",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
	}
}
