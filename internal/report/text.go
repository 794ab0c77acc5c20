package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/olehluchkiv/partcheck/internal/analyzer"
)

// TextReporter writes the human-readable report.
type TextReporter struct {
	w       io.Writer
	verbose bool
	heading *color.Color
	entry   *color.Color
}

// NewTextReporter writes to w. With colors false, no escape codes are written;
// otherwise color follows terminal detection. The index section is only written
// when verbose is set.
func NewTextReporter(w io.Writer, verbose, colors bool) *TextReporter {
	heading := color.New(color.FgRed)
	entry := color.New(color.FgGreen)
	if !colors {
		heading.DisableColor()
		entry.DisableColor()
	}
	return &TextReporter{w: w, verbose: verbose, heading: heading, entry: entry}
}

func (r *TextReporter) ReportUnsatisfied(contracts []string) error {
	if len(contracts) == 0 {
		return nil
	}
	if _, err := r.heading.Fprintln(r.w, "Not satisfied:"); err != nil {
		return err
	}
	return r.writeList(contracts)
}

func (r *TextReporter) ReportUnimplemented(services []string) error {
	if _, err := r.heading.Fprintln(r.w, "Unimplemented services:"); err != nil {
		return err
	}
	return r.writeList(services)
}

func (r *TextReporter) ReportIndex(index *analyzer.ContractIndex) error {
	if !r.verbose {
		return nil
	}
	for _, contract := range index.Contracts() {
		if _, err := r.entry.Fprintln(r.w, contract); err != nil {
			return err
		}
		for _, d := range sortedExports(index, contract) {
			if _, err := fmt.Fprintln(r.w, exportLine(d)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *TextReporter) writeList(names []string) error {
	var b strings.Builder
	for _, name := range sorted(names) {
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(r.w, b.String())
	return err
}

// exportLine formats a descriptor as [layer\t][language\t]type.
func exportLine(d analyzer.ExportDescriptor) string {
	var b strings.Builder
	if d.Layer != "" {
		b.WriteString(d.Layer)
		b.WriteString("\t")
	}
	if d.Language != "" {
		b.WriteString(d.Language)
		b.WriteString("\t")
	}
	b.WriteString(d.TypeName)
	return b.String()
}
