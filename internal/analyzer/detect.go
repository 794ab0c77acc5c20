package analyzer

import (
	"sort"

	"github.com/olehluchkiv/partcheck/internal/catalog"
)

// FindUnsatisfied returns the sorted import contracts no part exports.
func FindUnsatisfied(index *ContractIndex, parts []catalog.Part) []string {
	missing := make(map[string]bool)
	for _, part := range parts {
		for _, imp := range part.Imports {
			if !index.Has(imp.ContractName) {
				missing[imp.ContractName] = true
			}
		}
	}

	out := make([]string, 0, len(missing))
	for name := range missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FindUnimplemented returns, in candidate order, the service contracts that
// have no exports or only stub exports.
func FindUnimplemented(candidates []InterfaceType, index *ContractIndex, rootMarkers map[string]bool) []string {
	var out []string
	for _, t := range candidates {
		if !IsServiceContract(t, rootMarkers) {
			continue
		}
		exports, ok := index.Lookup(t.FullName())
		if !ok || allStubs(exports) {
			out = append(out, t.FullName())
		}
	}
	return out
}

func allStubs(exports []ExportDescriptor) bool {
	for _, d := range exports {
		if !IsStub(d.TypeName) {
			return false
		}
	}
	return true
}
