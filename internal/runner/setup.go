package runner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"surveyor/internal/config"
	"surveyor/internal/provider"
	"surveyor/internal/provider/anthropic"
	"surveyor/internal/provider/sonar"
	"surveyor/internal/storage"
	"surveyor/internal/storage/duckdb"
	"surveyor/internal/storage/memory"
)

// OpenStore builds the configured answer store. The returned closer is nil
// for backends with nothing to release.
func OpenStore(cfg config.StorageConfig, baseDir string) (storage.Provider, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil, nil
	case config.BackendDuckDB:
		path := cfg.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create storage dir: %w", err)
		}
		store, err := duckdb.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// HandlerFromEnv builds the configured provider handler, reading the API key
// and optional base URL override from the environment.
func HandlerFromEnv(cfg config.ProviderConfig, logger *slog.Logger) (provider.Handler, error) {
	switch cfg.Kind {
	case config.KindSonar:
		apiKey := strings.TrimSpace(os.Getenv("PERPLEXITY_API_KEY"))
		if apiKey == "" {
			return nil, fmt.Errorf("PERPLEXITY_API_KEY is required")
		}
		return sonar.New(sonar.Options{
			Model:             cfg.Model,
			APIKey:            apiKey,
			BaseURL:           strings.TrimSpace(os.Getenv("PERPLEXITY_BASE_URL")),
			Timeout:           cfg.Timeout(),
			RequestsPerSecond: cfg.RequestsPerSecond,
			Logger:            logger,
		})
	case config.KindAnthropic:
		apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
		return anthropic.New(anthropic.Options{
			Model:   cfg.Model,
			APIKey:  apiKey,
			BaseURL: strings.TrimSpace(os.Getenv("ANTHROPIC_BASE_URL")),
			Timeout: cfg.Timeout(),
			Logger:  logger,
		})
	default:
		return nil, fmt.Errorf("unsupported provider kind %q", cfg.Kind)
	}
}
