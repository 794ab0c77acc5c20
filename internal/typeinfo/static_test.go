package typeinfo

import (
	"testing"

	"github.com/olehluchkiv/partcheck/internal/analyzer"
	"github.com/olehluchkiv/partcheck/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(types []analyzer.InterfaceType) []string {
	var out []string
	for _, t := range types {
		out = append(out, t.FullName())
	}
	return out
}

func TestUniverse_Closure(t *testing.T) {
	u := NewUniverse([]catalog.TypeDecl{
		{Name: "Ns.IFoo", Interface: true, Extends: []string{"Host.IWorkspaceService"}},
		{Name: "Ns.IFooEx", Interface: true, Extends: []string{"Ns.IFoo", "System.IDisposable"}},
		{Name: "Ns.Foo", Extends: []string{"Ns.IFoo"}},
		{Name: "Ns.IFoo", Interface: true},
	})

	candidates := u.Candidates()
	require.Equal(t, []string{"Ns.IFoo", "Ns.IFooEx", "Ns.Foo"}, names(candidates))

	assert.Equal(t, []string{"Host.IWorkspaceService"}, names(candidates[0].AllInterfaces()))
	assert.Equal(t, []string{"Ns.IFoo", "System.IDisposable", "Host.IWorkspaceService"}, names(candidates[1].AllInterfaces()))
	assert.False(t, candidates[2].IsInterface())

	external := candidates[0].AllInterfaces()[0]
	assert.True(t, external.IsInterface())
	assert.Empty(t, external.AllInterfaces())
}

func TestUniverse_CycleTerminates(t *testing.T) {
	u := NewUniverse([]catalog.TypeDecl{
		{Name: "A", Interface: true, Extends: []string{"B"}},
		{Name: "B", Interface: true, Extends: []string{"A"}},
	})
	a := u.Candidates()[0]
	assert.Equal(t, []string{"B"}, names(a.AllInterfaces()))
}

func TestUniverse_ServiceContracts(t *testing.T) {
	roots := map[string]bool{"Host.IWorkspaceService": true, "Host.ILanguageService": true}
	u := NewUniverse([]catalog.TypeDecl{
		{Name: "Ns.IFoo", Interface: true, Extends: []string{"Host.IWorkspaceService"}},
		{Name: "Ns.IFooEx", Interface: true, Extends: []string{"Ns.IFoo"}},
		{Name: "Ns.IFmt", Interface: true, Extends: []string{"Host.ILanguageService", "System.IDisposable"}},
	})

	var contracts []string
	for _, c := range u.Candidates() {
		if analyzer.IsServiceContract(c, roots) {
			contracts = append(contracts, c.FullName())
		}
	}
	assert.Equal(t, []string{"Ns.IFoo", "Ns.IFmt"}, contracts)
}

func TestCombine(t *testing.T) {
	u1 := NewUniverse([]catalog.TypeDecl{{Name: "A", Interface: true}, {Name: "B"}})
	u2 := NewUniverse([]catalog.TypeDecl{{Name: "B", Interface: true}, {Name: "C"}})

	got := Combine(u1.Candidates(), nil, u2.Candidates())
	require.Equal(t, []string{"A", "B", "C"}, names(got))
	assert.False(t, got[1].IsInterface(), "first declaration of B wins")
}
