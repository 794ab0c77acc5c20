package analyzer

import (
	"io"
	"log/slog"

	"github.com/olehluchkiv/partcheck/internal/catalog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeType is an in-memory InterfaceType.
type fakeType struct {
	name    string
	iface   bool
	extends []*fakeType
}

func newIface(name string, extends ...*fakeType) *fakeType {
	return &fakeType{name: name, iface: true, extends: extends}
}

func (f *fakeType) FullName() string  { return f.name }
func (f *fakeType) IsInterface() bool { return f.iface }

func (f *fakeType) AllInterfaces() []InterfaceType {
	var out []InterfaceType
	seen := map[string]bool{}
	var walk func(t *fakeType)
	walk = func(t *fakeType) {
		for _, e := range t.extends {
			if seen[e.name] {
				continue
			}
			seen[e.name] = true
			out = append(out, e)
			walk(e)
		}
	}
	walk(f)
	return out
}

func ref(name, assembly string) *catalog.TypeRef {
	return &catalog.TypeRef{FullName: name, AssemblyName: assembly}
}

func export(contract string) catalog.ExportDefinition {
	return catalog.ExportDefinition{Value: catalog.ExportValue{ContractName: contract}}
}

func registration(contract string, md map[string]any) catalog.ExportedTypeMetadata {
	return catalog.ExportedTypeMetadata{ContractName: contract, Metadata: md}
}

func dump(ix *ContractIndex) map[string][]ExportDescriptor {
	out := make(map[string][]ExportDescriptor, ix.Len())
	for _, name := range ix.Contracts() {
		out[name], _ = ix.Lookup(name)
	}
	return out
}

func names(types []InterfaceType) []string {
	var out []string
	for _, t := range types {
		out = append(out, t.FullName())
	}
	return out
}
