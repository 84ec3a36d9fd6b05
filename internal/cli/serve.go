package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"surveyor/internal/reportserver"
)

// serveRuns is a test seam for running the report server.
var serveRuns = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .surveyor.yml)")
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if strings.TrimSpace(*addr) == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		outputDir, err := resolveRunsDir(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve runs: %v\n", err)
			return ExitError
		}

		cfg := reportserver.Config{
			Addr:      *addr,
			OutputDir: outputDir,
		}
		fmt.Fprintf(stdout, "Serving runs at http://%s\n", cfg.Addr)
		if err := serveRuns(context.Background(), cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
