package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/runner"
)

// ReportMarkdown summarizes a suite run as a Markdown document: a table of
// suites followed by the language description and mismatches of every suite
// that did not pass.
func ReportMarkdown(report *runner.Report) string {
	var sb strings.Builder
	sb.WriteString("# Suite report\n\n")
	fmt.Fprintf(&sb, "**%d passed, %d failed, %d errored**\n\n", report.Passed, report.Failed, report.Errored)

	sb.WriteString("| Suite | Variant | Cases | Status |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, s := range report.Suites {
		fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", s.ID, s.Variant, len(s.Cases), s.Status())
	}

	for _, s := range report.Suites {
		if s.Status() == runner.StatusPass {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", s.ID)
		if s.Language != "" {
			fmt.Fprintf(&sb, "> %s\n\n", strings.ReplaceAll(s.Language, "\n", "\n> "))
		}
		if s.Error != "" {
			fmt.Fprintf(&sb, "`%s`: %s\n", s.Kind, s.Error)
			continue
		}
		for _, c := range s.Mismatches() {
			fmt.Fprintf(&sb, "- `%s` was %s, expected %s\n", c.Input, verdictWord(c.Accepted), verdictWord(*c.Expected))
		}
		if !s.EmptinessMatches() {
			fmt.Fprintf(&sb, "- emptiness check disagreed (expected empty: %t)\n", *s.ExpectEmpty)
		}
	}
	return sb.String()
}

func verdictWord(accepted bool) string {
	if accepted {
		return "accepted"
	}
	return "rejected"
}
