package cli

import (
	"os"
	"path/filepath"
	"testing"

	"surveyor/internal/config"
)

const populationSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["population"],
  "properties": {
    "population": { "type": "integer" }
  }
}`

const projectConfig = `version: 1

question:
  template: "What is the population of {country}?"
  word_sets:
    - name: country
      values: [France, Germany]
  schema:
    name: population
    file: "schemas/population.schema.json"

provider:
  kind: sonar
  model: sonar-pro
  timeout_seconds: 30

storage:
  backend: memory

run:
  concurrency: 2
  output_dir: ".surveyor/runs"
  ui: plain
`

// writeProject lays out a loadable project and returns its root and config
// path.
func writeProject(t *testing.T) (string, string) {
	return writeProjectWithConfig(t, projectConfig)
}

// writeProjectWithConfig lays out a project with a custom config body.
func writeProjectWithConfig(t *testing.T, body string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	schemaDir := filepath.Join(dir, "schemas")
	if err := os.MkdirAll(schemaDir, 0o755); err != nil {
		t.Fatalf("create schemas dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(schemaDir, "population.schema.json"), []byte(populationSchema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	configPath := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir, configPath
}
