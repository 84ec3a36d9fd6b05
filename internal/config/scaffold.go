package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

question:
  template: "What were the 2023 GDP statistics for {country}?"
  word_sets:
    - name: country
      values: [France, Germany]
  schema:
    name: gdp_stats
    file: "schemas/gdp_stats.schema.json"

provider:
  kind: sonar
  model: sonar
  timeout_seconds: 60
  requests_per_second: 0.5

storage:
  backend: duckdb
  path: ".surveyor/answers.duckdb"

run:
  concurrency: 5
  provider_attempts: 4
  schema_attempts: 2
  output_dir: ".surveyor/runs"
  ui: auto
`

const defaultSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["gdp_nominal_usd", "gdp_growth_percent", "source"],
  "properties": {
    "gdp_nominal_usd": { "type": "number" },
    "gdp_growth_percent": { "type": "number" },
    "source": { "type": "string" }
  }
}
`

// Scaffold writes a starter config and sample schema. It refuses to touch
// files that already exist.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	baseDir := filepath.Dir(configPath)
	schemasDir := filepath.Join(baseDir, "schemas")
	if err := os.MkdirAll(schemasDir, 0o755); err != nil {
		return fmt.Errorf("create schemas dir: %w", err)
	}

	schemaPath := filepath.Join(schemasDir, "gdp_stats.schema.json")
	if info, err := os.Stat(schemaPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("schema path %q is a directory", schemaPath)
		}
		return fmt.Errorf("schema file already exists at %q", schemaPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat schema file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(schemaPath, []byte(defaultSchema), 0o644); err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}
	return nil
}
