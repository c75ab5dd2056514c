package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Runner evaluates every suite a loader provides and compares the verdicts
// with the recorded expectations.
type Runner struct {
	Engine ports.Evaluator
	Loader ports.SuiteLoader

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Reporter receives each suite outcome. If nil, outcomes are only
	// returned in the Report.
	Reporter Reporter

	FailFast bool
	Budget   int
	Filter   func(id string) bool
}

// NewRunner creates a Runner over the given engine and loader.
func NewRunner(engine ports.Evaluator, loader ports.SuiteLoader, opts ...Option) *Runner {
	r := &Runner{
		Engine:   engine,
		Loader:   loader,
		Logger:   logging.NewNop(),
		Reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the suites in the loader's order. Suite failures are recorded
// in the report; the returned error covers loader, reporter and context
// failures only.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	ids, err := r.Loader.ListSuites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suites: %w", err)
	}

	report := &Report{}
	for _, id := range ids {
		if r.Filter != nil && !r.Filter(id) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := r.runSuite(ctx, id)
		report.add(result)
		r.Logger.Debug("suite finished", "suite", id, "status", result.Status(), "duration", result.Duration)

		if err := r.Reporter.SuiteFinished(ctx, result); err != nil {
			return report, fmt.Errorf("reporter error: %w", err)
		}
		if r.FailFast && result.Status() != StatusPass {
			r.Logger.Info("stopping at first failing suite", "suite", id)
			break
		}
	}

	report.Duration = time.Since(start)
	if err := r.Reporter.Finish(ctx, report); err != nil {
		return report, fmt.Errorf("reporter error: %w", err)
	}
	return report, nil
}

func (r *Runner) runSuite(ctx context.Context, id string) *SuiteResult {
	start := time.Now()
	result := &SuiteResult{ID: id}
	defer func() { result.Duration = time.Since(start) }()

	suite, err := r.Loader.GetSuite(ctx, id)
	if err != nil {
		result.fail(err)
		return result
	}
	result.Variant = suite.Variant
	result.Language = suite.Language
	result.ExpectEmpty = suite.ExpectEmpty

	if len(suite.Words) > 0 {
		verdicts, err := r.Engine.Evaluate(ctx, domain.EvaluationRequest{
			Variant:     suite.Variant,
			Description: suite.Description,
			Words:       suite.Words,
			Budget:      r.Budget,
		})
		if err != nil {
			result.fail(err)
			return result
		}
		result.Cases = outcomes(suite, verdicts)
	}

	if suite.ExpectEmpty != nil {
		empty, err := r.Engine.IsEmpty(ctx, suite.Variant, suite.Description)
		if err != nil {
			result.fail(err)
			return result
		}
		result.Empty = &empty
	}
	return result
}

func outcomes(suite *domain.Suite, verdicts []bool) []CaseOutcome {
	out := make([]CaseOutcome, len(verdicts))
	for i, accepted := range verdicts {
		out[i] = CaseOutcome{CaseResult: domain.CaseResult{Input: suite.Words[i], Accepted: accepted}}
		if i < len(suite.Expect) {
			expected := suite.Expect[i]
			out[i].Expected = &expected
		}
	}
	return out
}

func (s *SuiteResult) fail(err error) {
	s.Error = err.Error()
	s.Kind = domain.KindOf(err)
}
