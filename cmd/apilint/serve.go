package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toyz/apilint/internal/cli"
	"github.com/toyz/apilint/internal/server"
)

func newServeCmd(global *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lint runs over HTTP",
		Long: `Serve starts an HTTP service accepting API dumps on POST /v1/lint.
The configuration file provides the defaults of every run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := global.diagnostics(stdout, stderr)
			reporter := cli.NewDiagnosticReporterWithWriters(global.verbose, stdout, stderr)

			cfg, _, err := cli.NewConfigResolver("").Resolve(global.config)
			if err != nil {
				reporter.ReportError(err)
				return &exitError{code: 1}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, diagnostics).Start(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	return cmd
}
