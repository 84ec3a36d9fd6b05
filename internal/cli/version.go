package cli

import (
	"fmt"
	"io"
)

// Version is the surveyor release version.
const Version = "0.1.0"

// runVersion builds the handler for the version command.
func runVersion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fmt.Fprintf(stdout, "surveyor %s\n", Version)
		return ExitOK
	}
}
