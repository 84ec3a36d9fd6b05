//go:build cucumber

package cucumber

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

// theOutputContains asserts stdout includes the given text.
func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected output to contain %q, got %q", text, s.stdout.String())
	}
	return nil
}

// theErrorOutputMentions asserts stderr includes the given text.
func (s *featureState) theErrorOutputMentions(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected error output to mention %q, got %q", text, s.stderr.String())
	}
	return nil
}

// theExitCodeIsZero asserts that the CLI succeeded.
func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d (stderr: %s)", s.exitCode, s.stderr.String())
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}
