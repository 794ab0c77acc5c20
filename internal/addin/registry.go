// Package addin enumerates the composition assemblies contributed by installed add-ins.
package addin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/partcheck/internal/catalog"
)

// ErrUnknownAddin is returned when an add-in id is not in the registry.
var ErrUnknownAddin = errors.New("unknown add-in")

// AssemblyLoadError reports an assembly node whose files could not be loaded.
type AssemblyLoadError struct {
	AddinID  string
	Assembly string
	Err      error
}

func (e *AssemblyLoadError) Error() string {
	return fmt.Sprintf("add-in %s: can't load assembly %s: %v", e.AddinID, e.Assembly, e.Err)
}

func (e *AssemblyLoadError) Unwrap() error { return e.Err }

// Entry is one installed add-in as listed in the registry file.
type Entry struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location"` // directory relative to the registry, or git URL
	Enabled  bool   `yaml:"enabled"`
}

type registryFile struct {
	Addins []Entry `yaml:"addins"`
}

// Manifest is the addin.yaml of one add-in.
type Manifest struct {
	ID           string      `yaml:"id"`
	Dependencies []string    `yaml:"dependencies,omitempty"`
	Extensions   []Extension `yaml:"extensions,omitempty"`
}

// Extension groups the assembly nodes an add-in contributes to an extension path.
type Extension struct {
	Path       string         `yaml:"path"`
	Assemblies []AssemblyNode `yaml:"assemblies"`
}

// AssemblyNode names the files backing one assembly, relative to the add-in directory.
type AssemblyNode struct {
	Name     string `yaml:"name"`
	Catalog  string `yaml:"catalog"`
	Packages string `yaml:"packages,omitempty"`
}

// Addin is a loaded add-in.
type Addin struct {
	Manifest
	Dir string
}

// Registry tracks installed add-ins and which of them are loaded.
type Registry struct {
	baseDir string
	entries map[string]Entry
	order   []string
	loaded  map[string]*Addin
	loading map[string]bool
	logger  *slog.Logger
}

// Open reads the registry file at path.
func Open(path string, logger *slog.Logger) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	var rf registryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}

	r := &Registry{
		baseDir: filepath.Dir(path),
		entries: make(map[string]Entry, len(rf.Addins)),
		loaded:  make(map[string]*Addin),
		loading: make(map[string]bool),
		logger:  logger.With("component", "addin"),
	}
	for _, e := range rf.Addins {
		if e.ID == "" {
			return nil, fmt.Errorf("registry %s: add-in without id", path)
		}
		if _, dup := r.entries[e.ID]; dup {
			return nil, fmt.Errorf("registry %s: duplicate add-in %s", path, e.ID)
		}
		r.entries[e.ID] = e
		r.order = append(r.order, e.ID)
	}
	r.logger.Info("registry opened", "path", path, "addins", len(r.order))
	return r, nil
}

// Load loads the add-in with the given id and, before it, its dependencies.
// Loading an already loaded add-in is a no-op.
func (r *Registry) Load(ctx context.Context, id string) error {
	if _, ok := r.loaded[id]; ok {
		return nil
	}
	if r.loading[id] {
		return fmt.Errorf("add-in %s: dependency cycle", id)
	}
	entry, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAddin, id)
	}

	r.loading[id] = true
	defer delete(r.loading, id)

	dir, err := Resolve(ctx, entry.Location, r.baseDir, r.logger)
	if err != nil {
		return fmt.Errorf("add-in %s: %w", id, err)
	}
	manifest, err := readManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		return fmt.Errorf("add-in %s: %w", id, err)
	}
	if manifest.ID != id {
		return fmt.Errorf("add-in %s: manifest declares id %q", id, manifest.ID)
	}

	for _, dep := range manifest.Dependencies {
		if err := r.Load(ctx, dep); err != nil {
			return fmt.Errorf("add-in %s: loading dependency: %w", id, err)
		}
	}

	r.loaded[id] = &Addin{Manifest: *manifest, Dir: dir}
	r.logger.Info("add-in loaded", "id", id, "dir", dir)
	return nil
}

// Loaded returns the ids of loaded add-ins in registry order.
func (r *Registry) Loaded() []string {
	var ids []string
	for _, id := range r.order {
		if _, ok := r.loaded[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Assemblies returns the assemblies that enabled or loaded add-ins contribute
// to the given extension paths. Add-ins that fail to load and assemblies whose
// files are missing are logged and left out.
func (r *Registry) Assemblies(ctx context.Context, extensionPaths []string) []catalog.Assembly {
	var active []*Addin
	for _, id := range r.order {
		_, loaded := r.loaded[id]
		if !loaded && !r.entries[id].Enabled {
			continue
		}
		if err := r.Load(ctx, id); err != nil {
			r.logger.Error("add-in can't be loaded", "id", id, "error", err)
			continue
		}
		active = append(active, r.loaded[id])
	}

	var out []catalog.Assembly
	seen := make(map[catalog.Assembly]bool)
	for _, path := range extensionPaths {
		for _, a := range active {
			for _, ext := range a.Extensions {
				if ext.Path != path {
					continue
				}
				for _, node := range ext.Assemblies {
					asm, err := a.assembly(node)
					if err != nil {
						r.logger.Error("composition can't load assembly", "error", err)
						continue
					}
					if seen[asm] {
						continue
					}
					seen[asm] = true
					out = append(out, asm)
				}
			}
		}
	}
	r.logger.Info("assemblies collected", "addins", len(active), "assemblies", len(out))
	return out
}

func (a *Addin) assembly(node AssemblyNode) (catalog.Assembly, error) {
	asm := catalog.Assembly{Name: node.Name}
	if node.Catalog != "" {
		asm.Catalog = filepath.Join(a.Dir, node.Catalog)
		if _, err := os.Stat(asm.Catalog); err != nil {
			return asm, &AssemblyLoadError{AddinID: a.ID, Assembly: node.Name, Err: err}
		}
	}
	if node.Packages != "" {
		asm.Packages = filepath.Join(a.Dir, node.Packages)
		if _, err := os.Stat(asm.Packages); err != nil {
			return asm, &AssemblyLoadError{AddinID: a.ID, Assembly: node.Name, Err: err}
		}
	}
	if asm.Catalog == "" && asm.Packages == "" {
		return asm, &AssemblyLoadError{AddinID: a.ID, Assembly: node.Name, Err: errors.New("no catalog or packages")}
	}
	return asm, nil
}

func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
