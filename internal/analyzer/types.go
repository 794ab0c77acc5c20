package analyzer

import "sort"

// ExportDescriptor is one implementation registered under a contract.
// Identity is (TypeName, AssemblyName); Language and Layer are informational.
type ExportDescriptor struct {
	TypeName     string
	AssemblyName string
	Language     string // empty when not a language service
	Layer        string
}

type descriptorKey struct {
	typeName     string
	assemblyName string
}

func (d ExportDescriptor) key() descriptorKey {
	return descriptorKey{typeName: d.TypeName, assemblyName: d.AssemblyName}
}

type bucket struct {
	seen  map[descriptorKey]struct{}
	items []ExportDescriptor
}

// ContractIndex maps contract names to the set of descriptors exported under them.
// A bucket exists only once a descriptor has been inserted into it.
type ContractIndex struct {
	buckets map[string]*bucket
}

// NewContractIndex returns an empty index.
func NewContractIndex() *ContractIndex {
	return &ContractIndex{buckets: make(map[string]*bucket)}
}

// Add inserts d under contract. A descriptor with the same identity already in the
// bucket wins; Add reports whether d was inserted.
func (ix *ContractIndex) Add(contract string, d ExportDescriptor) bool {
	b, ok := ix.buckets[contract]
	if !ok {
		b = &bucket{seen: make(map[descriptorKey]struct{})}
		ix.buckets[contract] = b
	}
	k := d.key()
	if _, dup := b.seen[k]; dup {
		return false
	}
	b.seen[k] = struct{}{}
	b.items = append(b.items, d)
	return true
}

// Has reports whether any export was registered under contract.
func (ix *ContractIndex) Has(contract string) bool {
	_, ok := ix.buckets[contract]
	return ok
}

// Lookup returns the descriptors under contract in insertion order.
func (ix *ContractIndex) Lookup(contract string) ([]ExportDescriptor, bool) {
	b, ok := ix.buckets[contract]
	if !ok {
		return nil, false
	}
	out := make([]ExportDescriptor, len(b.items))
	copy(out, b.items)
	return out, true
}

// Contracts returns all contract names, sorted.
func (ix *ContractIndex) Contracts() []string {
	names := make([]string, 0, len(ix.buckets))
	for name := range ix.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of contracts.
func (ix *ContractIndex) Len() int {
	return len(ix.buckets)
}

// Merge adds every descriptor of other into ix, bucket by bucket in insertion order.
func (ix *ContractIndex) Merge(other *ContractIndex) {
	for _, name := range other.Contracts() {
		for _, d := range other.buckets[name].items {
			ix.Add(name, d)
		}
	}
}

// InterfaceType is the introspection capability the classifiers need from a type.
// AllInterfaces returns the transitive closure of interfaces the type extends,
// not including the type itself.
type InterfaceType interface {
	FullName() string
	IsInterface() bool
	AllInterfaces() []InterfaceType
}

// Result holds the outcome of one analysis run.
type Result struct {
	Index         *ContractIndex
	Unsatisfied   []string // sorted
	Unimplemented []string // candidate order
	Skipped       []error  // malformed export entries left out of the index
}
