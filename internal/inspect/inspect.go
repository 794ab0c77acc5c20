// Package inspect runs the catalog analysis pipeline: collect assemblies,
// wait for the catalog, load candidate types, then index and detect.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/partcheck/internal/addin"
	"github.com/olehluchkiv/partcheck/internal/analyzer"
	"github.com/olehluchkiv/partcheck/internal/catalog"
	"github.com/olehluchkiv/partcheck/internal/typeinfo"
)

// ErrNoRegistry is returned when no explicit assemblies are given and there is
// no registry to enumerate them from.
var ErrNoRegistry = errors.New("no assemblies given and no add-in registry configured")

// Config holds the inputs of one run.
type Config struct {
	Assemblies     []catalog.Assembly // explicit set; empty means enumerate Registry
	Registry       *addin.Registry
	ExtensionPaths []string
	Options        analyzer.AnalyzeOptions
}

// TypeLoader loads candidate types from a directory of Go packages.
type TypeLoader func(ctx context.Context, dir string, logger *slog.Logger) ([]analyzer.InterfaceType, error)

// Inspector wires the collaborators of the pipeline.
type Inspector struct {
	Catalogs    catalog.Provider
	LoadGoTypes TypeLoader
	Logger      *slog.Logger
}

// New returns an Inspector reading snapshot files and Go packages from disk.
func New(concurrency int, logger *slog.Logger) *Inspector {
	return &Inspector{
		Catalogs:    catalog.NewFileProvider(concurrency, logger),
		LoadGoTypes: typeinfo.LoadGoPackages,
		Logger:      logger.With("component", "inspect"),
	}
}

// Run executes the pipeline and returns the analysis result.
func (in *Inspector) Run(ctx context.Context, cfg Config) (*analyzer.Result, error) {
	assemblies := cfg.Assemblies
	if len(assemblies) == 0 {
		if cfg.Registry == nil {
			return nil, ErrNoRegistry
		}
		assemblies = cfg.Registry.Assemblies(ctx, cfg.ExtensionPaths)
	}
	in.Logger.Info("analyzing assemblies", "count", len(assemblies))

	// An add-in set that contributes nothing still gets a report.
	cat := &catalog.Catalog{}
	if len(assemblies) > 0 {
		var err error
		cat, err = in.Catalogs.CreateCatalog(ctx, assemblies)
		if err != nil {
			return nil, fmt.Errorf("creating catalog: %w", err)
		}
	} else {
		in.Logger.Warn("registry contributed no assemblies")
	}

	var lists [][]analyzer.InterfaceType
	for _, asm := range assemblies {
		if asm.Packages == "" {
			continue
		}
		types, err := in.LoadGoTypes(ctx, asm.Packages, in.Logger)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			in.Logger.Error("can't load assembly types", "assembly", asm.Name, "dir", asm.Packages, "error", err)
			continue
		}
		lists = append(lists, types)
	}
	lists = append(lists, typeinfo.NewUniverse(cat.Types).Candidates())
	candidates := typeinfo.Combine(lists...)

	return analyzer.Analyze(ctx, cat, candidates, cfg.Options, in.Logger)
}
