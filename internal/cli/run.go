package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"surveyor/internal/config"
	"surveyor/internal/logging"
	"surveyor/internal/runner"
	"surveyor/internal/ui/live"
)

// runAndWrite is a test seam for executing runs.
var runAndWrite = runner.RunAndWrite

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .surveyor.yml)")
		outputDir := fs.String("output-dir", "", "Override the run output directory")
		uiMode := fs.String("ui", "", "Progress UI: auto, live, or plain (default: config run.ui)")
		verbose := fs.Bool("verbose", false, "Enable debug logging (implies plain output)")
		noColor := fs.Bool("no-color", false, "Disable colors in the live UI")
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

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%s\n", err.Error())
			return ExitError
		}
		baseDir := config.BaseDirFromConfigPath(resolved)

		mode := *uiMode
		if strings.TrimSpace(mode) == "" {
			mode = cfg.Run.UI
		}
		decision, err := resolveUIMode(mode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		runID, err := runner.NewRunID()
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		deps := runner.Dependencies{
			RunID: func() (string, error) { return runID, nil },
		}
		var controller *live.Controller
		if decision.useLive {
			set, err := config.BuildSet(cfg, baseDir)
			if err != nil {
				fmt.Fprintf(stderr, "Run failed:\n%s\n", err.Error())
				return ExitError
			}
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			controller.OnRunStart(runID, cfg.Provider.Kind, cfg.Provider.Model, set.Count())
			deps.Observer = controller
		} else {
			logger := logging.New(stderr, *verbose)
			deps.Logger = logger
			deps.Observer = runner.NewLogObserver(logger)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, paths, err := runAndWrite(ctx, cfg, runner.Params{
			ConfigPath: resolved,
			BaseDir:    baseDir,
			OutputDir:  *outputDir,
			Deps:       deps,
		})
		if controller != nil {
			controller.OnRunEnd()
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		summary := results.Summary
		fmt.Fprintf(stdout, "Run %s completed: %d questions, %d cached, %d fresh, %d failed\n",
			results.RunID, summary.QuestionsTotal, summary.Cached, summary.Fresh, summary.Failed)
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())
		if summary.Failed > 0 {
			fmt.Fprintf(stderr, "%d of %d questions failed\n", summary.Failed, summary.QuestionsTotal)
			return ExitError
		}
		return ExitOK
	}
}
