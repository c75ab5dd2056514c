package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

func compile(t *testing.T, v domain.Variant, d *domain.Description, opts ...runtime.CompileOption) runtime.Automaton {
	t.Helper()
	a, err := runtime.Compile(v, d, opts...)
	require.NoError(t, err)
	return a
}

func accepts(t *testing.T, a runtime.Automaton, word domain.Word) bool {
	t.Helper()
	verdict, err := a.Accepts(context.Background(), word, 0)
	require.NoError(t, err)
	return verdict.Accepted
}

func isEmpty(t *testing.T, a runtime.Automaton) bool {
	t.Helper()
	r, err := a.Emptiness(context.Background())
	require.NoError(t, err)
	return !r.Found
}

// scenarioNFA is the two-state automaton accepting a^n for n >= 1.
func scenarioNFA() *domain.Description {
	return &domain.Description{
		States:   []domain.State{"q0", "q1"},
		Alphabet: []domain.Symbol{"a", "b"},
		Initial:  []domain.State{"q0"},
		Final:    []domain.State{"q1"},
		Transitions: []domain.Transition{
			{Source: "q0", Symbol: "a", Destinations: domain.To("q0", "q1")},
		},
	}
}
