package typeinfo

import "github.com/olehluchkiv/partcheck/internal/analyzer"

// Combine concatenates candidate lists, keeping the first type seen for each name.
func Combine(lists ...[]analyzer.InterfaceType) []analyzer.InterfaceType {
	var out []analyzer.InterfaceType
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, t := range list {
			if seen[t.FullName()] {
				continue
			}
			seen[t.FullName()] = true
			out = append(out, t)
		}
	}
	return out
}
