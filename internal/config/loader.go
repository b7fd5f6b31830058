package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "openbobs.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config. HOST, PORT, and
// OLLAMA_URL keep their historical unprefixed names.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Host, "HOST")
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Ollama.URL, "OLLAMA_URL")

	setString(&cfg.Server.CORSOrigin, "OPENBOBS_CORS_ORIGIN")
	setString(&cfg.Server.StaticDir, "OPENBOBS_STATIC_DIR")
	setDuration(&cfg.Ollama.ChatTimeout, "OPENBOBS_CHAT_TIMEOUT")
	setDuration(&cfg.Ollama.HealthTimeout, "OPENBOBS_HEALTH_TIMEOUT")
	setString(&cfg.Search.BaseURL, "OPENBOBS_SEARCH_URL")
	setString(&cfg.Search.UserAgent, "OPENBOBS_SEARCH_USER_AGENT")
	setDuration(&cfg.Search.Timeout, "OPENBOBS_SEARCH_TIMEOUT")
	setDuration(&cfg.Search.CacheTTL, "OPENBOBS_SEARCH_CACHE_TTL")
	setDuration(&cfg.Tools.ProbeTimeout, "OPENBOBS_PROBE_TIMEOUT")
	setInt(&cfg.Tools.OutputLimit, "OPENBOBS_TOOL_OUTPUT_LIMIT")
	setString(&cfg.Library.Dir, "OPENBOBS_LIBRARY_DIR")
	setDuration(&cfg.Library.ImportTimeout, "OPENBOBS_IMPORT_TIMEOUT")
	setString(&cfg.Library.UserAgent, "OPENBOBS_IMPORT_USER_AGENT")
	setInt64(&cfg.Cache.MaxSizeMB, "OPENBOBS_CACHE_SIZE_MB")
	setString(&cfg.Logging.Level, "OPENBOBS_LOG_LEVEL")
	setString(&cfg.Logging.Service, "OPENBOBS_LOG_SERVICE")
	setInt(&cfg.Breaker.MaxFailures, "OPENBOBS_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "OPENBOBS_BREAKER_TIMEOUT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Ollama.URL == "" {
		return errors.New("ollama.url is required")
	}
	if cfg.Library.Dir == "" {
		return errors.New("library.dir is required")
	}
	if cfg.Tools.OutputLimit < 1 {
		return errors.New("tools.output_limit must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
