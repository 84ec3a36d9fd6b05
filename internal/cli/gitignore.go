package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// addGitignoreEntry appends a directory entry to baseDir/.gitignore unless an
// equivalent line is already present. It reports whether the file changed.
func addGitignoreEntry(baseDir, dir string) (bool, error) {
	entry, err := normalizeGitignorePath(baseDir, dir)
	if err != nil {
		return false, err
	}

	gitignorePath := filepath.Join(baseDir, ".gitignore")
	var existing []byte
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}

	for _, line := range strings.Split(string(existing), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == entry || trimmed == strings.TrimSuffix(entry, "/") {
			return false, nil
		}
	}

	updated := string(existing)
	if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry + "\n"
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// normalizeGitignorePath converts a directory to a slash-form entry relative
// to baseDir, with a trailing slash so only directories match.
func normalizeGitignorePath(baseDir, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("gitignore entry is required")
	}
	clean := filepath.Clean(dir)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(baseDir, clean)
		if err != nil {
			return "", fmt.Errorf("resolve gitignore entry: %w", err)
		}
		clean = rel
	}
	clean = strings.TrimPrefix(clean, "."+string(filepath.Separator))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("directory %q is outside the project root", dir)
	}
	return filepath.ToSlash(clean) + "/", nil
}
