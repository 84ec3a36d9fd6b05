// Package cli implements the surveyor command line interface.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  surveyor <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"surveyor <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .surveyor.yml and a sample schema", []string{
		"surveyor init [--config <path>]",
	}, runInit),
	command("validate", "Validate .surveyor.yml and its schema", []string{
		"surveyor validate [--config <path>]",
	}, runValidate),
	command("expand", "Print the expanded questions without asking them", []string{
		"surveyor expand [--config <path>]",
	}, runExpand),
	command("run", "Expand the questions and ask the provider", []string{
		"surveyor run [--config <path>] [--output-dir <dir>] [--ui auto|live|plain] [--verbose] [--no-color]",
	}, runRun),
	command("report", "Re-render a run report from its results.json", []string{
		"surveyor report [--config <path>] [--run <run-id>] [--output <path>]",
	}, runReport),
	command("serve", "Serve recorded runs over localhost HTTP", []string{
		"surveyor serve [--config <path>] [--addr <host:port>]",
	}, runServe),
	command("version", "Print the surveyor version", []string{
		"surveyor version",
	}, runVersion),
}
