package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olehluchkiv/partcheck/internal/analyzer"
)

// MermaidReporter renders the contract index as a Mermaid class diagram:
// contracts as interface blocks, implementations as class blocks linked to the
// contracts they are exported under. Unsatisfied imports and unimplemented
// services are drawn with the missing style. The diagram is written when the
// index is reported, so the other two sections must come first.
type MermaidReporter struct {
	w             io.Writer
	includeInit   bool
	unsatisfied   []string
	unimplemented map[string]bool
}

// NewMermaidReporter writes the diagram to w. includeInit adds the %%{init:}%%
// directive for standalone .mmd files.
func NewMermaidReporter(w io.Writer, includeInit bool) *MermaidReporter {
	return &MermaidReporter{w: w, includeInit: includeInit, unimplemented: map[string]bool{}}
}

func (r *MermaidReporter) ReportUnsatisfied(contracts []string) error {
	r.unsatisfied = append(r.unsatisfied, contracts...)
	return nil
}

func (r *MermaidReporter) ReportUnimplemented(services []string) error {
	for _, s := range services {
		r.unimplemented[s] = true
	}
	return nil
}

func (r *MermaidReporter) ReportIndex(index *analyzer.ContractIndex) error {
	_, err := io.WriteString(r.w, r.generate(index))
	return err
}

type implNode struct {
	id       string
	typeName string
	stub     bool
	lines    []string
}

func (r *MermaidReporter) generate(index *analyzer.ContractIndex) string {
	contracts := index.Contracts()
	missing := make(map[string]bool)
	for _, name := range r.unsatisfied {
		missing[name] = true
	}
	for name := range r.unimplemented {
		missing[name] = true
	}
	for name := range missing {
		if !index.Has(name) {
			contracts = append(contracts, name)
		}
	}
	sort.Strings(contracts)

	impls := make(map[string]*implNode)
	var relations []string
	for _, contract := range contracts {
		for _, d := range sortedExports(index, contract) {
			id := implID(d.TypeName)
			node, ok := impls[id]
			if !ok {
				node = &implNode{id: id, typeName: d.TypeName, stub: analyzer.IsStub(d.TypeName)}
				impls[id] = node
			}
			if d.Layer != "" {
				node.addLine("layer " + d.Layer)
			}
			if d.Language != "" {
				node.addLine("language " + d.Language)
			}
			relations = append(relations, fmt.Sprintf("    %s --|> %s", id, contractID(contract)))
		}
	}
	implIDs := make([]string, 0, len(impls))
	for id := range impls {
		implIDs = append(implIDs, id)
	}
	sort.Strings(implIDs)
	sort.Strings(relations)

	var b strings.Builder
	if r.includeInit {
		b.WriteString("%%{init: {'theme': 'base', 'themeVariables': {'primaryColor': '#ffffff', 'primaryBorderColor': '#cccccc', 'primaryTextColor': '#000000', 'lineColor': '#555555'}}}%%\n")
	}
	b.WriteString("classDiagram")
	if len(contracts) == 0 {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n    direction LR\n")
	b.WriteString("    classDef contractStyle fill:#2374ab,stroke:#1a5a8a,color:#fff,stroke-width:2px,font-weight:bold\n")
	b.WriteString("    classDef implStyle fill:#4a9c6d,stroke:#357a50,color:#fff,stroke-width:2px\n")
	b.WriteString("    classDef stubStyle fill:#9e9e9e,stroke:#6d6d6d,color:#fff,stroke-width:2px\n")
	b.WriteString("    classDef missingStyle fill:#c0392b,stroke:#922b21,color:#fff,stroke-width:2px,font-weight:bold\n")

	for _, contract := range contracts {
		fmt.Fprintf(&b, "\n    class %s[\"%s\"] {\n        <<interface>>\n    }", contractID(contract), contract)
	}
	if len(implIDs) > 0 {
		b.WriteString("\n")
	}
	for _, id := range implIDs {
		node := impls[id]
		fmt.Fprintf(&b, "\n    class %s[\"%s\"] {\n", id, node.typeName)
		for _, line := range node.lines {
			fmt.Fprintf(&b, "        +%s\n", line)
		}
		b.WriteString("    }")
	}

	if len(relations) > 0 {
		b.WriteString("\n")
	}
	for _, rel := range relations {
		b.WriteString("\n")
		b.WriteString(rel)
	}

	b.WriteString("\n")
	for _, contract := range contracts {
		style := "contractStyle"
		if missing[contract] {
			style = "missingStyle"
		}
		fmt.Fprintf(&b, "\n    cssClass \"%s\" %s", contractID(contract), style)
	}
	for _, id := range implIDs {
		style := "implStyle"
		if impls[id].stub {
			style = "stubStyle"
		}
		fmt.Fprintf(&b, "\n    cssClass \"%s\" %s", id, style)
	}
	b.WriteString("\n")
	return b.String()
}

func (n *implNode) addLine(line string) {
	for _, l := range n.lines {
		if l == line {
			return
		}
	}
	n.lines = append(n.lines, line)
}

var idReplacer = strings.NewReplacer(
	"/", "_", ".", "_", "-", "_", "+", "_", "`", "_",
	",", "_", " ", "_", "[", "_", "]", "_", "<", "_", ">", "_", "=", "_",
)

// NodeID turns a type or contract name into a Mermaid-safe identifier.
func NodeID(name string) string {
	return idReplacer.Replace(name)
}

// A part is often exported under its own type name, so contract and
// implementation nodes live in separate ID namespaces.
func contractID(name string) string { return "c_" + NodeID(name) }
func implID(name string) string     { return "i_" + NodeID(name) }
