package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"surveyor/internal/config"
	"surveyor/internal/report"
	"surveyor/internal/runner"
)

// renderRunReport is a test seam for rendering report HTML.
var renderRunReport = runner.RenderReportHTML

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .surveyor.yml)")
		runRef := fs.String("run", "", "Run id to render (default: most recent run)")
		outputPath := fs.String("output", "", "Report output path (default: the run's report.html)")
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

		outputDir, err := resolveRunsDir(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve runs: %v\n", err)
			return ExitError
		}

		results, runDir, err := report.ResolveRun(outputDir, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve run: %v\n", err)
			return ExitError
		}

		html, err := renderRunReport(context.Background(), results)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
			return ExitError
		}
		reportPath := *outputPath
		if reportPath == "" {
			reportPath = filepath.Join(runDir, "report.html")
		}
		if err := os.WriteFile(reportPath, []byte(html), 0o644); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", reportPath)
		return ExitOK
	}
}

// resolveRunsDir loads the config and returns the absolute run output dir.
func resolveRunsDir(configPath string) (string, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return "", err
	}
	outputDir := cfg.Run.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(config.BaseDirFromConfigPath(resolved), outputDir)
	}
	return outputDir, nil
}
