package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

func TestIndex(t *testing.T) {
	d := scenarioNFA()
	d.Transitions = append(d.Transitions,
		domain.Transition{Source: "q0", Symbol: "a", Destinations: domain.To("q1")},
		domain.Transition{Source: "q0", Symbol: "b", Destinations: domain.To("q0")},
	)
	idx := runtime.NewIndex(d.Transitions)

	assert.Equal(t, 3, idx.Len())
	got := idx.Lookup("q0", "a")
	require.Len(t, got, 2)
	assert.Equal(t, []domain.State{"q0", "q1"}, got[0].Targets(), "declaration order is kept")
	assert.Empty(t, idx.Lookup("q1", "a"))
	assert.Len(t, idx.From("q0"), 3)
}

func TestCompile_UnknownVariant(t *testing.T) {
	_, err := runtime.Compile("DFA", scenarioNFA())
	var uerr *domain.UnknownVariantError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "DFA", uerr.Tag)
}

func TestCompile_RejectsInvalidDescription(t *testing.T) {
	d := scenarioNFA()
	d.Initial = []domain.State{"nowhere"}
	_, err := runtime.Compile(domain.VariantNFA, d)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCompile_CopiesDescription(t *testing.T) {
	d := scenarioNFA()
	a := compile(t, domain.VariantNFA, d)

	d.Final = []domain.State{"q0"}
	d.Transitions[0].Destinations = domain.To("q0")

	assert.True(t, accepts(t, a, domain.Symbols("a")))
	assert.False(t, accepts(t, a, domain.Word{}))
}

func TestEmptiness_UnsupportedVariants(t *testing.T) {
	cases := map[domain.Variant]*domain.Description{
		domain.VariantRA:  scenarioRA(),
		domain.VariantCCA: twiceCCA(),
		domain.VariantCMA: requestReplyCMA(),
	}
	for v, d := range cases {
		t.Run(string(v), func(t *testing.T) {
			_, err := compile(t, v, d).Emptiness(context.Background())
			var uerr *domain.UnsupportedOperationError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, v, uerr.Variant)
		})
	}
}

func TestReach_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runtime.Reach(ctx, runtime.Graph[int]{
		Roots:      []int{0},
		Successors: func(n int) []int { return []int{n + 1} },
		Accepting:  func(int) bool { return false },
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReach_Cycles(t *testing.T) {
	r, err := runtime.Reach(context.Background(), runtime.Graph[int]{
		Roots:      []int{0, 0},
		Successors: func(n int) []int { return []int{(n + 1) % 5} },
		Accepting:  func(int) bool { return false },
	})
	require.NoError(t, err)
	assert.False(t, r.Found)
	assert.Equal(t, 5, r.Visited)
}
