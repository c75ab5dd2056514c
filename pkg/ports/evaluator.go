package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Evaluator is the primary interface used by adapters (e.g., HTTP, MCP) to
// drive the engine. Implementations are stateless between calls.
type Evaluator interface {
	// Evaluate decides every word of the request, returning one verdict per
	// word in input order.
	Evaluate(ctx context.Context, req domain.EvaluationRequest) ([]bool, error)

	// IsEmpty reports whether the automaton accepts no word at all.
	IsEmpty(ctx context.Context, variant domain.Variant, desc *domain.Description) (bool, error)
}

// SuiteLoader provides fixture suites (an automaton, words and expectations).
type SuiteLoader interface {
	// ListSuites returns the available suite IDs in a stable order.
	ListSuites(ctx context.Context) ([]string, error)

	// GetSuite loads a suite by ID.
	GetSuite(ctx context.Context, id string) (*domain.Suite, error)
}
