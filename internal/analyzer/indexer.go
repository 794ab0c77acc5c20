package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/olehluchkiv/partcheck/internal/catalog"
	"golang.org/x/sync/errgroup"
)

// Indexer builds a ContractIndex from catalog parts.
type Indexer struct {
	Markers MarkerSet
	Logger  *slog.Logger
}

// NewIndexer returns an Indexer classifying registrations with markers.
func NewIndexer(markers MarkerSet, logger *slog.Logger) *Indexer {
	return &Indexer{Markers: markers, Logger: logger.With("component", "indexer")}
}

// BuildIndex indexes parts with the default markers.
func BuildIndex(parts []catalog.Part, logger *slog.Logger) (*ContractIndex, []error) {
	return NewIndexer(DefaultMarkers(), logger).Build(parts)
}

// Build walks every export of every part and indexes it under its effective
// contract. Malformed export entries are skipped and returned; the rest of the
// index is unaffected by them.
func (x *Indexer) Build(parts []catalog.Part) (*ContractIndex, []error) {
	index := NewContractIndex()
	var skipped []error
	for i := range parts {
		skipped = append(skipped, x.indexPart(index, i, &parts[i])...)
	}
	x.Logger.Info("index built", "parts", len(parts), "contracts", index.Len(), "skipped", len(skipped))
	return index, skipped
}

// BuildParallel indexes chunks of parts concurrently into partial indices and
// merges them in part order, which yields the same index as Build.
func (x *Indexer) BuildParallel(ctx context.Context, parts []catalog.Part, workers int) (*ContractIndex, []error, error) {
	if workers <= 1 || len(parts) < 2 {
		index, skipped := x.Build(parts)
		return index, skipped, nil
	}
	if workers > len(parts) {
		workers = len(parts)
	}
	chunk := (len(parts) + workers - 1) / workers

	type partial struct {
		index   *ContractIndex
		skipped []error
	}
	partials := make([]partial, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(parts))
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			index := NewContractIndex()
			var skipped []error
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				skipped = append(skipped, x.indexPart(index, i, &parts[i])...)
			}
			partials[w] = partial{index: index, skipped: skipped}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	index := NewContractIndex()
	var skipped []error
	for _, p := range partials {
		if p.index == nil {
			continue
		}
		index.Merge(p.index)
		skipped = append(skipped, p.skipped...)
	}
	x.Logger.Info("index built", "parts", len(parts), "workers", workers, "contracts", index.Len(), "skipped", len(skipped))
	return index, skipped, nil
}

func (x *Indexer) indexPart(index *ContractIndex, partIndex int, part *catalog.Part) []error {
	var skipped []error
	for j, def := range part.Exports {
		contract, desc, err := x.resolveExport(part, def)
		switch {
		case errors.Is(err, errExcludedProvider):
			x.Logger.Debug("export excluded", "part", partIndex, "contract", def.Value.ContractName)
			continue
		case err != nil:
			var malformed *MalformedPartError
			if errors.As(err, &malformed) {
				malformed.PartIndex, malformed.ExportIndex = partIndex, j
			}
			x.Logger.Warn("skipping malformed export", "error", err)
			skipped = append(skipped, err)
			continue
		}
		index.Add(contract, desc)
	}
	return skipped
}

// resolveExport computes the effective contract and descriptor of one export.
// Later marker registrations override earlier ones; an excluded-provider
// registration anywhere voids the export.
func (x *Indexer) resolveExport(part *catalog.Part, def catalog.ExportDefinition) (string, ExportDescriptor, error) {
	typ := def.Key.Type
	if typ == nil || typ.FullName == "" {
		typ = part.Type
	}
	if typ == nil || typ.FullName == "" {
		return "", ExportDescriptor{}, &MalformedPartError{ContractName: def.Value.ContractName}
	}

	contract := def.Value.ContractName
	var language, layer string
	for _, exported := range part.ExportedTypes {
		fam := x.Markers.classify(exported.ContractName)
		switch fam {
		case familyExcluded:
			return "", ExportDescriptor{}, errExcludedProvider
		case familyUnrecognized:
			continue
		}

		if serviceType, ok := stringMetadata(exported.Metadata, MetadataServiceType); ok {
			if name := stripAssemblyQualifier(serviceType); name != "" {
				contract = name
			}
		}
		if v, ok := stringMetadata(exported.Metadata, MetadataLayer); ok {
			layer = v
		}
		if fam == familyLanguageService {
			if v, ok := stringMetadata(exported.Metadata, MetadataLanguage); ok {
				language = v
			}
		}
	}

	return contract, ExportDescriptor{
		TypeName:     typ.FullName,
		AssemblyName: typ.AssemblyName,
		Language:     language,
		Layer:        layer,
	}, nil
}

func stringMetadata(md map[string]any, key string) (string, bool) {
	v, ok := md[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// stripAssemblyQualifier turns "Ns.Type, Assembly, Version=..." into "Ns.Type".
func stripAssemblyQualifier(name string) string {
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
