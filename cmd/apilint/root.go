package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/toyz/apilint/internal/utils"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

// exitError ends the process with a specific exit code
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type globalFlags struct {
	verbose bool
	quiet   bool
	noColor bool
	config  string
}

func (g *globalFlags) diagnostics(stdout, stderr io.Writer) *utils.DiagnosticSystem {
	level := utils.DiagnosticInfo
	switch {
	case g.quiet:
		level = utils.DiagnosticError
	case g.verbose:
		level = utils.DiagnosticVerbose
	}
	d := utils.NewDiagnosticSystemWithWriters(level, stdout, stderr)
	if g.noColor {
		d.SetColors(false)
	}
	return d
}

func (g *globalFlags) useColor() bool {
	return !g.noColor && !color.NoColor
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "apilint",
		Short: "apilint - Java API surface linter",
		Long: `apilint reads a line-oriented Java API dump and reports naming and design
convention violations. Given the dump of the previous release it also reports
backward-incompatible changes and suppresses findings that already existed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output and detailed error reporting")
	root.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only show errors and final results")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Path to configuration file (defaults to the nearest .apilint.yaml)")

	root.AddCommand(
		newLintCmd(flags, stdout, stderr),
		newServeCmd(flags, stdout, stderr),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(stdout, "apilint %s\n", Version)
			},
		},
	)
	return root
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	var exit *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.code
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
