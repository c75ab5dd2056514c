package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// TextReporter writes a human readable line per suite and a closing summary.
type TextReporter struct {
	Writer io.Writer
	Styler Styler

	// Verbose lists every case, not only the failing ones.
	Verbose bool
}

// TextReporterOption defines configuration for TextReporter.
type TextReporterOption func(*TextReporter)

// WithStyler configures the decoration of status labels.
func WithStyler(styler Styler) TextReporterOption {
	return func(h *TextReporter) {
		h.Styler = styler
	}
}

// WithVerbose lists every case of every suite.
func WithVerbose(verbose bool) TextReporterOption {
	return func(h *TextReporter) {
		h.Verbose = verbose
	}
}

// NewTextReporter creates a reporter writing to w (stdout when nil).
func NewTextReporter(w io.Writer, opts ...TextReporterOption) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	h := &TextReporter{Writer: w}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextReporter) style(status string) string {
	if h.Styler == nil {
		return status
	}
	return h.Styler(status, status)
}

func (h *TextReporter) SuiteFinished(ctx context.Context, result *SuiteResult) error {
	status := result.Status()
	var b strings.Builder

	fmt.Fprintf(&b, "%-5s %s", h.style(status), result.ID)
	if result.Variant != "" {
		fmt.Fprintf(&b, " [%s]", result.Variant)
	}
	fmt.Fprintf(&b, " %d case(s)\n", len(result.Cases))

	if result.Error != "" {
		fmt.Fprintf(&b, "      %s: %s\n", result.Kind, result.Error)
	}
	for _, c := range result.Cases {
		if h.Verbose || !c.Matches() {
			fmt.Fprintf(&b, "      %s -> %s\n", c.Input, caseLine(c))
		}
	}
	if !result.EmptinessMatches() {
		fmt.Fprintf(&b, "      emptiness: got %s, want %s\n", verdict(result.Empty), verdict(result.ExpectEmpty))
	}

	_, err := io.WriteString(h.Writer, b.String())
	return err
}

func (h *TextReporter) Finish(ctx context.Context, report *Report) error {
	_, err := fmt.Fprintf(h.Writer, "\n%d passed, %d failed, %d errored in %s\n",
		report.Passed, report.Failed, report.Errored, report.Duration.Round(time.Millisecond))
	return err
}

func caseLine(c CaseOutcome) string {
	got := "rejected"
	if c.Accepted {
		got = "accepted"
	}
	if c.Expected == nil || c.Matches() {
		return got
	}
	return got + " (expected " + verdictWord(*c.Expected) + ")"
}

func verdictWord(accepted bool) string {
	if accepted {
		return "accepted"
	}
	return "rejected"
}

func verdict(b *bool) string {
	if b == nil {
		return "none"
	}
	if *b {
		return "empty"
	}
	return "non-empty"
}
