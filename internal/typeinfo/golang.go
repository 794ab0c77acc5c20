package typeinfo

import (
	"context"
	"fmt"
	"go/types"
	"log/slog"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/olehluchkiv/partcheck/internal/analyzer"
)

// goType adapts a named Go type. Interface closures follow embedded interfaces.
type goType struct {
	obj *types.TypeName
}

func newGoType(obj *types.TypeName) *goType { return &goType{obj: obj} }

func (t *goType) FullName() string { return qualifiedName(t.obj) }

func (t *goType) IsInterface() bool {
	_, ok := t.obj.Type().Underlying().(*types.Interface)
	return ok
}

func (t *goType) AllInterfaces() []analyzer.InterfaceType {
	iface, ok := t.obj.Type().Underlying().(*types.Interface)
	if !ok {
		return nil
	}
	var out []analyzer.InterfaceType
	seen := map[string]bool{t.FullName(): true}
	var walk func(*types.Interface)
	walk = func(it *types.Interface) {
		for i := 0; i < it.NumEmbeddeds(); i++ {
			named, ok := types.Unalias(it.EmbeddedType(i)).(*types.Named)
			if !ok {
				continue
			}
			inner, ok := named.Underlying().(*types.Interface)
			if !ok {
				continue
			}
			obj := named.Origin().Obj()
			name := qualifiedName(obj)
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, newGoType(obj))
			walk(inner)
		}
	}
	walk(iface)
	return out
}

func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

// LoadGoPackages loads the Go packages under dir and returns every named type
// declared in them, sorted by package then name.
func LoadGoPackages(ctx context.Context, dir string, logger *slog.Logger) ([]analyzer.InterfaceType, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedImports,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	logger.Info("packages loaded", "dir", dir, "packages_count", len(pkgs))
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	var out []analyzer.InterfaceType
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
		if pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || tn.IsAlias() {
				continue
			}
			t := newGoType(tn)
			if seen[t.FullName()] {
				continue
			}
			seen[t.FullName()] = true
			out = append(out, t)
			logger.Debug("found type", "name", t.FullName(), "interface", t.IsInterface())
		}
	}
	return out, nil
}
