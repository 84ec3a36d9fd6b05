// Package config loads, normalizes, and validates the .surveyor.yml project
// file that declares a question template, its word sets, the provider to
// query, and where answers and run outputs live.
package config

import "time"

// Provider kinds accepted by provider.kind.
const (
	KindSonar     = "sonar"
	KindAnthropic = "anthropic"
)

// Storage backends accepted by storage.backend.
const (
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"
)

// UI modes accepted by run.ui.
const (
	UIAuto  = "auto"
	UILive  = "live"
	UIPlain = "plain"
)

type Config struct {
	Version  int            `yaml:"version"`
	Question QuestionConfig `yaml:"question"`
	Provider ProviderConfig `yaml:"provider"`
	Storage  StorageConfig  `yaml:"storage"`
	Run      RunConfig      `yaml:"run"`
}

type QuestionConfig struct {
	Template string          `yaml:"template"`
	WordSets []WordSetConfig `yaml:"word_sets"`
	Schema   SchemaConfig    `yaml:"schema"`
}

type WordSetConfig struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

type SchemaConfig struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type ProviderConfig struct {
	Kind              string  `yaml:"kind"`
	Model             string  `yaml:"model"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type RunConfig struct {
	Concurrency      int    `yaml:"concurrency"`
	ProviderAttempts int    `yaml:"provider_attempts"`
	SchemaAttempts   int    `yaml:"schema_attempts"`
	OutputDir        string `yaml:"output_dir"`
	UI               string `yaml:"ui"`
}

// Timeout converts the per-request timeout_seconds config to a duration.
func (p ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}
