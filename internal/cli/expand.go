package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"surveyor/internal/config"
)

// runExpand builds the handler for the expand command.
func runExpand(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .surveyor.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Expand failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Expand failed:\n%s\n", err.Error())
			return ExitError
		}
		set, err := config.BuildSet(cfg, config.BaseDirFromConfigPath(resolved))
		if err != nil {
			fmt.Fprintf(stderr, "Expand failed:\n%s\n", err.Error())
			return ExitError
		}

		questions := set.Expand()
		for i, q := range questions {
			fmt.Fprintf(stdout, "%3d. %s\n", i+1, q.RenderedText)
		}
		fmt.Fprintf(stdout, "\n%d questions (%d combinations)\n", len(questions), set.Count())
		return ExitOK
	}
}
