package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfigPathWalksUpward(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	if found != configPath {
		t.Fatalf("expected %q, got %q", configPath, found)
	}
}

func TestFindConfigPathMissing(t *testing.T) {
	if _, err := FindConfigPath(t.TempDir()); err == nil {
		t.Fatalf("expected error when no config exists")
	}
}

func TestBaseDirFromConfigPath(t *testing.T) {
	path := filepath.Join("some", "project", ConfigFileName)
	if got := BaseDirFromConfigPath(path); got != filepath.Join("some", "project") {
		t.Fatalf("unexpected base dir %q", got)
	}
}
