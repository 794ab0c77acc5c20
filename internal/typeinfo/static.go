// Package typeinfo provides interface-closure providers: types declared in
// catalog snapshots, and types loaded from Go packages.
package typeinfo

import (
	"github.com/olehluchkiv/partcheck/internal/analyzer"
	"github.com/olehluchkiv/partcheck/internal/catalog"
)

// Universe resolves type declarations by name. Names referenced in an extends
// list without a declaration of their own are treated as external interfaces
// that extend nothing.
type Universe struct {
	types map[string]*declaredType
	order []string
}

type declaredType struct {
	u       *Universe
	name    string
	iface   bool
	extends []string
}

// NewUniverse indexes decls. A repeated name keeps its first declaration.
func NewUniverse(decls []catalog.TypeDecl) *Universe {
	u := &Universe{types: make(map[string]*declaredType, len(decls))}
	for _, d := range decls {
		if d.Name == "" {
			continue
		}
		if _, dup := u.types[d.Name]; dup {
			continue
		}
		u.types[d.Name] = &declaredType{u: u, name: d.Name, iface: d.Interface, extends: d.Extends}
		u.order = append(u.order, d.Name)
	}
	return u
}

// Candidates returns the declared types in declaration order.
func (u *Universe) Candidates() []analyzer.InterfaceType {
	out := make([]analyzer.InterfaceType, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, u.types[name])
	}
	return out
}

func (u *Universe) lookup(name string) *declaredType {
	if t, ok := u.types[name]; ok {
		return t
	}
	return &declaredType{u: u, name: name, iface: true}
}

func (t *declaredType) FullName() string  { return t.name }
func (t *declaredType) IsInterface() bool { return t.iface }

// AllInterfaces walks extends lists transitively. Cycles terminate.
func (t *declaredType) AllInterfaces() []analyzer.InterfaceType {
	var out []analyzer.InterfaceType
	seen := map[string]bool{t.name: true}
	queue := append([]string(nil), t.extends...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		next := t.u.lookup(name)
		out = append(out, next)
		queue = append(queue, next.extends...)
	}
	return out
}
