package analyzer

// MostSpecificInterfaces returns the members of all that are not in the
// interface closure of any other member, preserving input order.
func MostSpecificInterfaces(all []InterfaceType) []InterfaceType {
	implied := make(map[string]bool)
	for _, t := range all {
		self := t.FullName()
		for _, inner := range t.AllInterfaces() {
			if name := inner.FullName(); name != self {
				implied[name] = true
			}
		}
	}

	var out []InterfaceType
	seen := make(map[string]bool, len(all))
	for _, t := range all {
		name := t.FullName()
		if implied[name] || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, t)
	}
	return out
}

// IsServiceContract reports whether t is an interface that directly refines
// one of the root markers, i.e. a root marker is among the most specific
// interfaces of t's closure.
func IsServiceContract(t InterfaceType, rootMarkers map[string]bool) bool {
	if !t.IsInterface() {
		return false
	}
	for _, m := range MostSpecificInterfaces(t.AllInterfaces()) {
		if rootMarkers[m.FullName()] {
			return true
		}
	}
	return false
}
