package config

import "strings"

func Normalize(cfg *Config) {
	if strings.TrimSpace(cfg.Provider.Kind) == "" {
		cfg.Provider.Kind = KindSonar
	}
	if strings.TrimSpace(cfg.Storage.Backend) == "" {
		cfg.Storage.Backend = BackendDuckDB
	}
	if cfg.Storage.Backend == BackendDuckDB && strings.TrimSpace(cfg.Storage.Path) == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if strings.TrimSpace(cfg.Run.OutputDir) == "" {
		cfg.Run.OutputDir = DefaultOutputDir
	}
	if strings.TrimSpace(cfg.Run.UI) == "" {
		cfg.Run.UI = UIAuto
	}
}
