// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every setting the application reads.
type Config struct {
	// BackendURL is the story backend's base URL, configured once and never
	// re-derived.
	BackendURL string `env:"STORYWEAVE_BACKEND_URL" env-default:"http://localhost:8000"`

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `env:"STORYWEAVE_REQUEST_TIMEOUT" env-default:"30s"`

	// RequestsPerSecond caps outbound calls to the backend. Zero disables
	// the limiter.
	RequestsPerSecond float64 `env:"STORYWEAVE_REQUESTS_PER_SECOND" env-default:"0"`

	// ListenAddr is where the web UI listens when serving.
	ListenAddr string `env:"STORYWEAVE_LISTEN_ADDR" env-default:":3000"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"STORYWEAVE_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("backend URL cannot be empty")
	}

	return cfg, nil
}
