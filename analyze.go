package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/partcheck/internal/addin"
	"github.com/olehluchkiv/partcheck/internal/analyzer"
	"github.com/olehluchkiv/partcheck/internal/catalog"
	"github.com/olehluchkiv/partcheck/internal/config"
	"github.com/olehluchkiv/partcheck/internal/inspect"
	"github.com/olehluchkiv/partcheck/internal/report"
)

// reportFlags are the flags shared by every command that produces a report.
type reportFlags struct {
	registry string
	verbose  bool
	filter   string
	workers  int
	mermaid  string
	noColor  bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.registry, "registry", "", "add-in registry file")
	fs.BoolVarP(&f.verbose, "verbose", "v", true, "also print the full contract index")
	fs.StringVar(&f.filter, "filter", "", "only report contracts with this name prefix")
	fs.IntVar(&f.workers, "workers", 1, "parallel catalog readers and indexing workers")
	fs.StringVar(&f.mermaid, "mermaid", "", "also write the contract index as a Mermaid diagram to this file")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// apply overrides cfg with the flags given on the command line.
func (f *reportFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("registry") {
		cfg.Registry = f.registry
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("filter") {
		cfg.Filter = f.filter
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	return cfg.Validate()
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		rf       reportFlags
		catalogs []string
		packages string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze explicit catalogs, or the assemblies of enabled add-ins",
		Long: `Analyze indexes the given catalog snapshots and reports unsatisfied
imports and unimplemented services.

Without --catalog or --packages the assemblies are collected from the
add-in registry (--registry, or the registry named in the config file).

Usage:
  partcheck analyze --catalog host.catalog.yaml --catalog lang.catalog.yaml
  partcheck analyze --catalog catalog.yaml --packages ./services
  partcheck analyze --registry ~/.config/partcheck/registry.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, cfg, cleanup, err := a.start()
			if err != nil {
				return err
			}
			defer cleanup()
			if err := rf.apply(cmd, &cfg); err != nil {
				return err
			}

			in := inspect.Config{Assemblies: explicitAssemblies(catalogs, packages)}
			if len(in.Assemblies) == 0 {
				reg, err := openRegistry(cfg, logger)
				if err != nil {
					return err
				}
				in.Registry = reg
			}
			return a.analyze(cmd.Context(), logger, cfg, rf, in)
		},
	}
	rf.register(cmd)
	cmd.Flags().StringArrayVar(&catalogs, "catalog", nil, "catalog snapshot file (repeatable)")
	cmd.Flags().StringVar(&packages, "packages", "", "directory of Go packages to take candidate interfaces from")
	return cmd
}

func explicitAssemblies(catalogs []string, packages string) []catalog.Assembly {
	var out []catalog.Assembly
	for _, path := range catalogs {
		out = append(out, catalog.Assembly{Name: filepath.Base(path), Catalog: path})
	}
	if packages != "" {
		out = append(out, catalog.Assembly{Name: filepath.Base(packages), Packages: packages})
	}
	return out
}

func openRegistry(cfg config.Config, logger *slog.Logger) (*addin.Registry, error) {
	if cfg.Registry == "" {
		return nil, &UsageError{Msg: "no catalogs given and no add-in registry configured"}
	}
	return addin.Open(cfg.Registry, logger)
}

// analyze runs the pipeline and writes the report to stdout, plus the Mermaid
// file when one was requested.
func (a *app) analyze(ctx context.Context, logger *slog.Logger, cfg config.Config, rf reportFlags, in inspect.Config) error {
	in.ExtensionPaths = cfg.ExtensionPaths
	in.Options = analyzer.AnalyzeOptions{
		Markers: cfg.Markers,
		Workers: cfg.Workers,
		Filter:  cfg.Filter,
	}

	result, err := inspect.New(cfg.Workers, logger).Run(ctx, in)
	if err != nil {
		return err
	}
	if len(result.Skipped) > 0 {
		logger.Warn("malformed exports skipped", "count", len(result.Skipped))
	}

	var reporter report.Reporter = report.NewTextReporter(a.stdout, cfg.Verbose, !rf.noColor)
	if rf.mermaid != "" {
		f, err := os.Create(rf.mermaid)
		if err != nil {
			return fmt.Errorf("creating diagram file: %w", err)
		}
		defer f.Close()
		reporter = report.Multi(reporter, report.NewMermaidReporter(f, true))
	}
	return report.Write(reporter, result)
}
