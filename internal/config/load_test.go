package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeProjectFixture lays out a project dir with a config file and the
// schema it references, returning the config path.
func writeProjectFixture(t *testing.T, configBody string) string {
	t.Helper()
	baseDir := writeSchemaFixture(t)
	configPath := filepath.Join(baseDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func TestLoadValidFile(t *testing.T) {
	configPath := writeProjectFixture(t, `version: 1
question:
  template: "What is the population of {country}?"
  word_sets:
    - name: country
      values: [France, Germany]
  schema:
    name: population
    file: "schemas/population.json"
provider:
  kind: sonar
  model: sonar-pro
  timeout_seconds: 90
storage:
  backend: memory
run:
  concurrency: 3
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.Provider.Model != "sonar-pro" {
		t.Fatalf("unexpected model %q", cfg.Provider.Model)
	}
	if cfg.Provider.Timeout() != 90*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Provider.Timeout())
	}
	if cfg.Run.UI != UIAuto {
		t.Fatalf("expected normalized ui mode, got %q", cfg.Run.UI)
	}
	if cfg.Run.OutputDir != DefaultOutputDir {
		t.Fatalf("expected normalized output dir, got %q", cfg.Run.OutputDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), ConfigFileName)); err == nil {
		t.Fatalf("expected load error for missing file")
	}
}

func TestLoadReportsValidationIssues(t *testing.T) {
	configPath := writeProjectFixture(t, `version: 1
question:
  template: "What is the population of {country}?"
  word_sets:
    - name: country
      values: [France]
  schema:
    name: population
    file: "schemas/population.json"
provider:
  kind: oracle
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}
