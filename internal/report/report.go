// Package report renders analysis results.
package report

import (
	"errors"
	"sort"

	"github.com/olehluchkiv/partcheck/internal/analyzer"
)

// Reporter receives the three result sets of an analysis.
type Reporter interface {
	ReportUnsatisfied(contracts []string) error
	ReportUnimplemented(services []string) error
	ReportIndex(index *analyzer.ContractIndex) error
}

// Write sends result to r section by section.
func Write(r Reporter, result *analyzer.Result) error {
	if err := r.ReportUnsatisfied(result.Unsatisfied); err != nil {
		return err
	}
	if err := r.ReportUnimplemented(result.Unimplemented); err != nil {
		return err
	}
	return r.ReportIndex(result.Index)
}

type multi []Reporter

// Multi fans every section out to all reporters.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

func (m multi) ReportUnsatisfied(contracts []string) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.ReportUnsatisfied(contracts))
	}
	return errors.Join(errs...)
}

func (m multi) ReportUnimplemented(services []string) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.ReportUnimplemented(services))
	}
	return errors.Join(errs...)
}

func (m multi) ReportIndex(index *analyzer.ContractIndex) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.ReportIndex(index))
	}
	return errors.Join(errs...)
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

// sortedExports returns the descriptors under contract ordered by type name,
// then assembly.
func sortedExports(index *analyzer.ContractIndex, contract string) []analyzer.ExportDescriptor {
	exports, _ := index.Lookup(contract)
	sort.SliceStable(exports, func(i, j int) bool {
		if exports[i].TypeName != exports[j].TypeName {
			return exports[i].TypeName < exports[j].TypeName
		}
		return exports[i].AssemblyName < exports[j].AssemblyName
	})
	return exports
}
