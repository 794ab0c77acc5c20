package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSnapshot reads a catalog snapshot from path. JSON snapshots are accepted
// since they parse as YAML. Unknown fields are rejected.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}

// DecodeSnapshot parses a snapshot from r and fills in the default assembly
// on type refs that omit one.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return &snap, nil
		}
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	snap.applyDefaultAssembly()
	return &snap, nil
}

func (s *Snapshot) applyDefaultAssembly() {
	if s.Assembly == "" {
		return
	}
	fill := func(ref *TypeRef) {
		if ref != nil && ref.AssemblyName == "" {
			ref.AssemblyName = s.Assembly
		}
	}
	for i := range s.Parts {
		p := &s.Parts[i]
		fill(p.Type)
		for j := range p.Exports {
			fill(p.Exports[j].Key.Type)
		}
	}
}
