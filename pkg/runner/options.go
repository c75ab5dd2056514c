package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithReporter configures how suite outcomes are presented.
func WithReporter(reporter Reporter) Option {
	return func(r *Runner) {
		r.Reporter = reporter
	}
}

// WithFailFast stops the run at the first suite that does not pass.
func WithFailFast(failFast bool) Option {
	return func(r *Runner) {
		r.FailFast = failFast
	}
}

// WithBudget sets the per-word exploration budget passed to the engine.
// Zero keeps the engine default.
func WithBudget(budget int) Option {
	return func(r *Runner) {
		r.Budget = budget
	}
}

// WithFilter restricts the run to the suite IDs the predicate accepts.
func WithFilter(filter func(id string) bool) Option {
	return func(r *Runner) {
		r.Filter = filter
	}
}
