package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"surveyor/internal/config"
)

func stubInitInput(t *testing.T, input io.Reader) {
	t.Helper()
	original := initInput
	initInput = input
	t.Cleanup(func() { initInput = original })
}

// TestInitCommandScaffoldsProject verifies init writes the config, the
// starter schema, and the .gitignore entry when prompts are accepted.
func TestInitCommandScaffoldsProject(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, config.ConfigFileName)
	stubInitInput(t, strings.NewReader(""))

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", target}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
	}

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	schemaPath := filepath.Join(dir, "schemas", "gdp_stats.schema.json")
	if _, err := os.Stat(schemaPath); err != nil {
		t.Fatalf("expected starter schema: %v", err)
	}
	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("expected .gitignore: %v", err)
	}
	if !strings.Contains(string(ignore), config.DataDirName+"/") {
		t.Fatalf("expected data dir entry in .gitignore, got %q", string(ignore))
	}

	output := out.String()
	if !strings.Contains(output, "Wrote "+target) {
		t.Fatalf("expected config write notice, got %q", output)
	}
	if !strings.Contains(output, "Wrote "+schemaPath) {
		t.Fatalf("expected schema write notice, got %q", output)
	}
	if !strings.Contains(output, "Updated ") {
		t.Fatalf("expected gitignore notice, got %q", output)
	}

	if _, err := config.Load(target); err != nil {
		t.Fatalf("scaffolded config should load: %v", err)
	}
}

// TestInitCommandRefusesOverwrite verifies an existing config is preserved.
func TestInitCommandRefusesOverwrite(t *testing.T) {
	_, configPath := writeProject(t)
	stubInitInput(t, strings.NewReader(""))

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %q", errOut.String())
	}
}

// TestInitCommandCancelled verifies declining the prompt writes nothing.
func TestInitCommandCancelled(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, config.ConfigFileName)
	stubInitInput(t, strings.NewReader("n\n"))

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", target}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "Init cancelled.") {
		t.Fatalf("expected cancellation notice, got %q", errOut.String())
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected no config file, got %v", err)
	}
}

// TestInitCommandSkipsGitignoreWhenDeclined verifies the second prompt.
func TestInitCommandSkipsGitignoreWhenDeclined(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, config.ConfigFileName)
	stubInitInput(t, strings.NewReader("y\nn\n"))

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", target}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
	}
	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); !os.IsNotExist(err) {
		t.Fatalf("expected no .gitignore, got %v", err)
	}
}
