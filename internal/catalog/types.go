package catalog

// TypeRef identifies a concrete type by its full name and the assembly that defines it.
type TypeRef struct {
	FullName     string `yaml:"name"`
	AssemblyName string `yaml:"assembly"`
}

// ExportKey carries the type an export was declared on, if the part declared one.
type ExportKey struct {
	Type *TypeRef `yaml:"type,omitempty"`
}

// ExportValue carries the contract an export is published under.
type ExportValue struct {
	ContractName string `yaml:"contract"`
}

// ExportDefinition is one (key, value) export pair of a part.
type ExportDefinition struct {
	Key   ExportKey   `yaml:",inline"`
	Value ExportValue `yaml:",inline"`
}

// ExportedTypeMetadata describes one interface the part's type is registered under,
// together with the metadata attached to that registration.
type ExportedTypeMetadata struct {
	ContractName string         `yaml:"contract"`
	Metadata     map[string]any `yaml:"metadata,omitempty"`
}

// Import is a contract a part requires.
type Import struct {
	ContractName string `yaml:"contract"`
}

// Part is a unit of the composition catalog.
type Part struct {
	Type          *TypeRef               `yaml:"type,omitempty"` // fallback for exports without a declared type
	Exports       []ExportDefinition     `yaml:"exports,omitempty"`
	ExportedTypes []ExportedTypeMetadata `yaml:"exportedTypes,omitempty"`
	Imports       []Import               `yaml:"imports,omitempty"`
}

// TypeDecl declares a type known to a snapshot, with the interfaces it directly extends.
type TypeDecl struct {
	Name      string   `yaml:"name"`
	Interface bool     `yaml:"interface"`
	Extends   []string `yaml:"extends,omitempty"`
}

// Snapshot is the on-disk form of a catalog dump produced by a plugin host.
type Snapshot struct {
	Assembly string     `yaml:"assembly,omitempty"` // default assembly for type refs without one
	Parts    []Part     `yaml:"parts,omitempty"`
	Types    []TypeDecl `yaml:"types,omitempty"`
}

// Assembly is one unit of the analyzed set: a catalog snapshot and, optionally,
// a directory of Go packages that define the assembly's interfaces.
type Assembly struct {
	Name     string
	Catalog  string // snapshot file path
	Packages string // Go module directory, may be empty
}

// Catalog is the merged, immutable input of one analysis run.
type Catalog struct {
	Parts []Part
	Types []TypeDecl
}
