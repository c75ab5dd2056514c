package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
)

func TestReportMarkdown(t *testing.T) {
	no := false
	report := &runner.Report{
		Passed: 1,
		Failed: 1,
		Suites: []*runner.SuiteResult{
			{ID: "ok", Variant: domain.VariantNFA},
			{
				ID:       "bad",
				Variant:  domain.VariantRA,
				Language: "Words whose values\nnever repeat.",
				Cases: []runner.CaseOutcome{{
					CaseResult: domain.CaseResult{Input: domain.Word{domain.Datum("a", 1)}, Accepted: true},
					Expected:   &no,
				}},
			},
		},
	}

	md := ReportMarkdown(report)
	assert.Contains(t, md, "**1 passed, 1 failed, 0 errored**")
	assert.Contains(t, md, "| ok | NFA | 0 | PASS |")
	assert.Contains(t, md, "| bad | RA | 1 | FAIL |")
	assert.Contains(t, md, "> Words whose values\n> never repeat.")
	assert.Contains(t, md, "- `[(a, 1)]` was accepted, expected rejected")
	assert.NotContains(t, md, "## ok")
}

func TestRenderer(t *testing.T) {
	out, err := NewRenderer(80)("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestNonTerminalOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.False(t, IsTerminal(buf))
	assert.Equal(t, 42, Width(buf, 42))

	// Buffers have no color profile, so labels pass through unchanged.
	assert.Equal(t, "PASS", StatusStyler(buf)("PASS", "PASS"))

	PrintBanner(buf)
	assert.True(t, strings.Contains(buf.String(), `/_/   \_\`))
}
