package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ErrNoAssemblies is returned when a catalog is requested for an empty assembly set.
var ErrNoAssemblies = errors.New("no assemblies to analyze")

// Provider builds a catalog from a set of assemblies.
type Provider interface {
	CreateCatalog(ctx context.Context, assemblies []Assembly) (*Catalog, error)
}

// FileProvider reads one snapshot file per assembly.
type FileProvider struct {
	Concurrency int // 0 means unlimited
	Logger      *slog.Logger
}

// NewFileProvider returns a FileProvider reading up to concurrency snapshots at once.
func NewFileProvider(concurrency int, logger *slog.Logger) *FileProvider {
	return &FileProvider{Concurrency: concurrency, Logger: logger.With("component", "catalog")}
}

// CreateCatalog reads all snapshots concurrently and merges them in assembly order,
// so the resulting part sequence is deterministic.
func (p *FileProvider) CreateCatalog(ctx context.Context, assemblies []Assembly) (*Catalog, error) {
	if len(assemblies) == 0 {
		return nil, ErrNoAssemblies
	}

	snaps := make([]*Snapshot, len(assemblies))
	g, gctx := errgroup.WithContext(ctx)
	if p.Concurrency > 0 {
		g.SetLimit(p.Concurrency)
	}
	for i, asm := range assemblies {
		if asm.Catalog == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := LoadSnapshot(asm.Catalog)
			if err != nil {
				return fmt.Errorf("assembly %s: %w", asm.Name, err)
			}
			p.Logger.Debug("snapshot loaded", "assembly", asm.Name, "parts", len(snap.Parts), "types", len(snap.Types))
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for _, snap := range snaps {
		if snap == nil {
			continue
		}
		cat.Parts = append(cat.Parts, snap.Parts...)
		cat.Types = append(cat.Types, snap.Types...)
	}
	p.Logger.Info("catalog ready", "assemblies", len(assemblies), "parts", len(cat.Parts), "types", len(cat.Types))
	return cat, nil
}
