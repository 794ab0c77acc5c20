package analyzer

import "strings"

var stubMarkers = []string{"default", "null", "noop"}

// IsStub reports whether typeName names a placeholder implementation: its
// unqualified name contains Default, Null or NoOp in any case.
func IsStub(typeName string) bool {
	name := strings.ToLower(unqualifiedName(typeName))
	for _, m := range stubMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

func unqualifiedName(name string) string {
	// Generic arguments may themselves be qualified.
	if i := strings.IndexAny(name, "[<"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexAny(name, "./+"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
