package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/toyz/apilint/internal/cli"
	"github.com/toyz/apilint/internal/config"
	"github.com/toyz/apilint/internal/parser"
	"github.com/toyz/apilint/internal/report"
	"github.com/toyz/apilint/internal/utils"
)

type lintFlags struct {
	allowGoogle           bool
	showNoticed           bool
	deprecationsAtBirth   bool
	filterErrors          []string
	allowedPackages       []string
	deprecationAnnotation string
	libraryVersion        int
	resultJSON            string
	appendJSON            bool
	apiMap                string
}

// apply overrides the config with every flag given on the command line
func (f *lintFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("allow-google") {
		cfg.AllowGoogle = f.allowGoogle
	}
	if changed("show-noticed") {
		cfg.Output.ShowNoticed = f.showNoticed
	}
	if changed("filter-errors") {
		cfg.FilterErrors = f.filterErrors
	}
	if changed("allowed-packages") {
		cfg.AllowedPackages = f.allowedPackages
	}
	if changed("deprecation-annotation") {
		cfg.DeprecationAnnotation = f.deprecationAnnotation
	}
	if changed("library-version") {
		version := f.libraryVersion
		cfg.LibraryVersion = &version
	}
	if changed("result-json") {
		cfg.Output.ResultJSON = f.resultJSON
	}
	if changed("append-json") {
		cfg.Output.AppendJSON = f.appendJSON
	}
	if changed("api-map") {
		cfg.Output.APIMap = f.apiMap
	}
}

func newLintCmd(global *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint <current.txt> [previous.txt]",
		Short: "Lint an API dump, optionally against the previous release",
		Long: `Lint reports style findings for the current API dump. With a previous
dump, findings it already had are suppressed and removed or changed API
is reported as incompatible.

Exit codes:
  0    no issues, or style warnings only
  77   style errors
  131  incompatible API changes
  10   API changes noticed (with --show-noticed)

Example:
  apilint lint api/current.txt
  apilint lint api/current.txt api/previous.txt --result-json results.json
  apilint lint api/current.txt api/previous.txt --show-deprecations-at-birth`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, global, flags, args, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.allowGoogle, "allow-google", false, "Allow references to Google")
	f.BoolVar(&flags.showNoticed, "show-noticed", false, "Report API changes noticed since the previous dump")
	f.BoolVar(&flags.deprecationsAtBirth, "show-deprecations-at-birth", false, "Only report new API that is already deprecated")
	f.StringSliceVar(&flags.filterErrors, "filter-errors", nil, "Only report findings whose rule starts with one of these prefixes")
	f.StringSliceVar(&flags.allowedPackages, "allowed-packages", nil, "Packages the API may reference types from")
	f.StringVar(&flags.deprecationAnnotation, "deprecation-annotation", "", "Annotation scheduling the removal of deprecated API")
	f.IntVar(&flags.libraryVersion, "library-version", 0, "Version of the library being released")
	f.StringVar(&flags.resultJSON, "result-json", "", "Write the results as JSON to this file")
	f.BoolVar(&flags.appendJSON, "append-json", false, "Merge the results into an existing JSON file")
	f.StringVar(&flags.apiMap, "api-map", "", "Map of dump lines to source locations")
	return cmd
}

func runLint(cmd *cobra.Command, global *globalFlags, flags *lintFlags, args []string, stdout, stderr io.Writer) error {
	diagnostics := global.diagnostics(stdout, stderr)
	reporter := cli.NewDiagnosticReporterWithWriters(global.verbose, stdout, stderr)
	fail := func(err error) error {
		reporter.ReportError(err)
		return &exitError{code: 1}
	}

	cfg, path, err := cli.NewConfigResolver("").Resolve(global.config)
	if err != nil {
		return fail(err)
	}
	if path != "" {
		diagnostics.Verbose("using config %s", path)
	}
	flags.apply(cmd, cfg)
	if global.noColor {
		cfg.Output.NoColor = true
	}

	runner, err := cli.NewRunner(cfg, diagnostics)
	if err != nil {
		return fail(err)
	}

	req := cli.Request{Current: cli.FileDump(args[0])}
	if len(args) > 1 {
		req.Previous = cli.FileDump(args[1])
	}
	if cfg.Output.APIMap != "" {
		apiMap, err := parser.LoadAPIMap(utils.NewFileReader(), cfg.Output.APIMap)
		if err != nil {
			return fail(err)
		}
		req.APIMap = apiMap
	}

	useColor := global.useColor() && !cfg.Output.NoColor
	if flags.deprecationsAtBirth {
		store, err := runner.DeprecationsAtBirth(cmd.Context(), req)
		if err != nil {
			return fail(err)
		}
		report.NewPrinter(stdout, useColor).Failures("Deprecated at birth", store)
		return nil
	}

	res, err := runner.Run(cmd.Context(), req)
	if err != nil {
		return fail(err)
	}
	if res.ParseErrors != nil {
		reporter.ReportParseErrors(args[0], res.ParseErrors)
	}

	if cfg.Output.ResultJSON != "" {
		if err := report.WriteFile(cfg.Output.ResultJSON, runner.Document(res), cfg.Output.AppendJSON); err != nil {
			return fail(err)
		}
		diagnostics.Verbose("wrote results to %s", cfg.Output.ResultJSON)
	}

	runner.Print(stdout, res, useColor)
	if global.verbose {
		for _, diff := range res.Diffs {
			diagnostics.Verbose("%s: +%d -%d members", diff.Class, len(diff.Added), len(diff.Removed))
		}
		reporter.ReportSummary(res.Summary())
	}

	if code := res.Status.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}
