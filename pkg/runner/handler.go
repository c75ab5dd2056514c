package runner

import "context"

// Reporter presents suite outcomes as they are produced.
type Reporter interface {
	// SuiteFinished is called once per suite, in load order.
	SuiteFinished(ctx context.Context, result *SuiteResult) error

	// Finish is called once with the complete report.
	Finish(ctx context.Context, report *Report) error
}

// Styler decorates a status label ("PASS", "FAIL", "ERROR"), for instance
// with terminal colors.
type Styler func(status, label string) string

type nopReporter struct{}

func (nopReporter) SuiteFinished(context.Context, *SuiteResult) error { return nil }
func (nopReporter) Finish(context.Context, *Report) error             { return nil }
