package analyzer

import (
	"context"
	"log/slog"

	"github.com/olehluchkiv/partcheck/internal/catalog"
)

// AnalyzeOptions controls analysis behavior.
type AnalyzeOptions struct {
	Markers MarkerSet
	Workers int    // parallel indexing workers; <= 1 indexes sequentially
	Filter  string // contract name prefix filter applied to the result
}

// Analyze indexes the catalog and runs both detectors over it. The index is
// complete before either detector runs.
func Analyze(ctx context.Context, cat *catalog.Catalog, candidates []InterfaceType, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	indexer := NewIndexer(opts.Markers, logger)
	index, skipped, err := indexer.BuildParallel(ctx, cat.Parts, opts.Workers)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Index:         index,
		Unsatisfied:   FindUnsatisfied(index, cat.Parts),
		Unimplemented: FindUnimplemented(candidates, index, opts.Markers.RootMarkers()),
		Skipped:       skipped,
	}
	logger.Info("analysis complete",
		"contracts", index.Len(),
		"unsatisfied", len(result.Unsatisfied),
		"unimplemented", len(result.Unimplemented),
		"candidates", len(candidates))

	if opts.Filter != "" {
		result = Filter(result, opts.Filter)
	}
	return result, nil
}
