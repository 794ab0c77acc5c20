package analyzer

import "strings"

// Filter keeps only the contracts whose name starts with prefix. Skipped
// entries are carried over unchanged.
func Filter(result *Result, prefix string) *Result {
	filtered := &Result{
		Index:   NewContractIndex(),
		Skipped: result.Skipped,
	}

	for _, name := range result.Unsatisfied {
		if strings.HasPrefix(name, prefix) {
			filtered.Unsatisfied = append(filtered.Unsatisfied, name)
		}
	}
	for _, name := range result.Unimplemented {
		if strings.HasPrefix(name, prefix) {
			filtered.Unimplemented = append(filtered.Unimplemented, name)
		}
	}
	for _, name := range result.Index.Contracts() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		exports, _ := result.Index.Lookup(name)
		for _, d := range exports {
			filtered.Index.Add(name, d)
		}
	}
	return filtered
}
