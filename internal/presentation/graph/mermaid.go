package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of an automaton.
// States are circles, final states double circles; each initial state gets an
// invisible entry node. One edge is drawn per destination, labeled with the
// symbol followed by the variant's guard and side effect:
// - RA: =R guard and R:=d update
// - SAFA: p(h)/!p(h) check and ins(h) insertion
// - CCA: counter constraint and instruction
// - CMA: last=q memory guard, ⊥ for values never read
// CMA local final states are drawn dashed.
func GenerateMermaid(v domain.Variant, d *domain.Description) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	final := stateSet(d.Final, d.GlobalFinal)
	for _, q := range d.States {
		opener, closer := "((", "))"
		if final[q] {
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(q), opener, escapeLabel(q), closer)
	}

	for i, q := range d.Initial {
		fmt.Fprintf(&sb, "    __init%d[\" \"] --> %s\n", i, sanitizeMermaidID(q))
	}

	updates := make(map[[2]string]string, len(d.Updates))
	for _, u := range d.Updates {
		updates[[2]string{u.State, u.Symbol}] = u.Register
	}

	for _, t := range d.Transitions {
		for _, dest := range t.Destinations {
			label := escapeLabel(edgeLabel(v, t, dest, updates))
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(t.Source), label, sanitizeMermaidID(dest.State))
		}
	}

	sb.WriteString("\n    classDef init fill:none,stroke:none;\n")
	for i := range d.Initial {
		fmt.Fprintf(&sb, "    class __init%d init;\n", i)
	}
	if len(d.LocalFinal) > 0 {
		sb.WriteString("    classDef localFinal stroke-dasharray:4 4;\n")
		for _, q := range d.LocalFinal {
			fmt.Fprintf(&sb, "    class %s localFinal;\n", sanitizeMermaidID(q))
		}
	}

	return sb.String()
}

func edgeLabel(v domain.Variant, t domain.Transition, dest domain.Destination, updates map[[2]string]string) string {
	parts := []string{t.Symbol}
	switch v {
	case domain.VariantRA:
		if t.Register != "" {
			parts = append(parts, "="+t.Register)
		}
		if r, ok := updates[[2]string{t.Source, t.Symbol}]; ok {
			parts = append(parts, r+":=d")
		}
	case domain.VariantSAFA:
		if t.Check != nil {
			parts = append(parts, t.Check.String())
		}
		if dest.Insert != "" {
			parts = append(parts, "ins("+dest.Insert+")")
		}
	case domain.VariantCCA:
		if t.Constraint != nil {
			parts = append(parts, t.Constraint.String())
		}
		parts = append(parts, t.Instruction.String())
	case domain.VariantCMA:
		last := t.Remembered
		if last == "" {
			last = "⊥"
		}
		parts = append(parts, "last="+last)
	}
	return strings.Join(parts, ", ")
}

func stateSet(lists ...[]domain.State) map[domain.State]bool {
	set := make(map[domain.State]bool)
	for _, l := range lists {
		for _, q := range l {
			set[q] = true
		}
	}
	return set
}

var labelEscaper = strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;")

func escapeLabel(s string) string {
	return labelEscaper.Replace(s)
}

func sanitizeMermaidID(id string) string {
	s := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
	// "end" is a Mermaid keyword.
	if strings.EqualFold(s, "end") {
		s = "state_" + s
	}
	return s
}
