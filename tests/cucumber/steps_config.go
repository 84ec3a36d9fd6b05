//go:build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["population"],
  "properties": {
    "population": { "type": "integer" }
  }
}`

// aProjectWithValidConfig sets up a temp project with a valid config.
func (s *featureState) aProjectWithValidConfig() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "surveyor-feature-*")
	if err != nil {
		return fmt.Errorf("create temp project: %w", err)
	}
	s.projectDir = dir
	s.configPath = filepath.Join(dir, ".surveyor.yml")
	s.storage = "memory"
	s.countries = []string{"France", "Germany"}

	schemaPath := filepath.Join(dir, "schemas", "population.schema.json")
	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		return fmt.Errorf("create schemas dir: %w", err)
	}
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	if err := s.writeConfig(s.renderConfig()); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

// theConfigIsInvalid replaces the config with an unsupported version.
func (s *featureState) theConfigIsInvalid() error {
	if err := s.aProjectWithValidConfig(); err != nil {
		return err
	}
	invalid := strings.Replace(s.renderConfig(), "version: 1", "version: 2", 1)
	return s.writeConfig(invalid)
}

// theProjectStoresAnswersInDuckDB switches the store to a DuckDB file.
func (s *featureState) theProjectStoresAnswersInDuckDB() error {
	if err := s.aProjectWithValidConfig(); err != nil {
		return err
	}
	s.storage = "duckdb"
	return s.writeConfig(s.renderConfig())
}

// theWordSetGainsValue appends a value to a word set and rewrites the config.
func (s *featureState) theWordSetGainsValue(name, value string) error {
	if name != "country" {
		return fmt.Errorf("unknown word set %q", name)
	}
	s.countries = append(s.countries, value)
	return s.writeConfig(s.renderConfig())
}

// writeConfig persists configuration content to the project config path.
func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// renderConfig renders the scenario's config from its current settings.
func (s *featureState) renderConfig() string {
	storage := "storage:\n  backend: memory\n"
	if s.storage == "duckdb" {
		storage = "storage:\n  backend: duckdb\n  path: \".surveyor/answers.duckdb\"\n"
	}
	return fmt.Sprintf(`version: 1

question:
  template: "What is the population of {country}?"
  word_sets:
    - name: country
      values: [%s]
  schema:
    name: population
    file: "schemas/population.schema.json"

provider:
  kind: sonar
  model: sonar-pro
  timeout_seconds: 30

%s
run:
  concurrency: 2
  output_dir: ".surveyor/runs"
  ui: plain
`, strings.Join(s.countries, ", "), storage)
}
