package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/automata/pkg/domain"
)

// twiceCCA accepts when "b" reads a value that "a" has read exactly twice;
// further "b"s are allowed once the class has been reset.
func twiceCCA() *domain.Description {
	return &domain.Description{
		States:   []domain.State{"p", "f"},
		Alphabet: []domain.Symbol{"a", "b"},
		Initial:  []domain.State{"p"},
		Final:    []domain.State{"f"},
		Transitions: []domain.Transition{
			{Source: "p", Symbol: "a", Constraint: &domain.Constraint{Op: domain.OpLt, Bound: 2}, Instruction: domain.Instruction{Add: 1}, Destinations: domain.To("p")},
			{Source: "p", Symbol: "b", Constraint: &domain.Constraint{Op: domain.OpEq, Bound: 2}, Instruction: domain.Instruction{Reset: true}, Destinations: domain.To("f")},
			{Source: "f", Symbol: "b", Constraint: &domain.Constraint{Op: domain.OpEq, Bound: 0}, Destinations: domain.To("f")},
		},
	}
}

func TestCCA_Counters(t *testing.T) {
	a := compile(t, domain.VariantCCA, twiceCCA())

	tests := []struct {
		name string
		word domain.Word
		want bool
	}{
		{"two a then b", domain.Word{domain.Datum("a", 1), domain.Datum("a", 1), domain.Datum("b", 1)}, true},
		{"one a then b", domain.Word{domain.Datum("a", 1), domain.Datum("b", 1)}, false},
		{"three a", domain.Word{domain.Datum("a", 1), domain.Datum("a", 1), domain.Datum("a", 1)}, false},
		{"different classes", domain.Word{domain.Datum("a", 1), domain.Datum("a", 2), domain.Datum("b", 1)}, false},
		{"reset class", domain.Word{domain.Datum("a", 1), domain.Datum("a", 1), domain.Datum("b", 1), domain.Datum("b", 1)}, true},
		{"unseen class after reset", domain.Word{domain.Datum("a", 1), domain.Datum("a", 1), domain.Datum("b", 1), domain.Datum("b", 9)}, true},
		{"missing value", domain.Word{domain.Sym("a")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accepts(t, a, tt.word))
		})
	}
}

func TestCCA_MultipleInitialStates(t *testing.T) {
	d := twiceCCA()
	d.Initial = []domain.State{"p", "f"}
	a := compile(t, domain.VariantCCA, d)

	assert.True(t, accepts(t, a, domain.Word{}))
	assert.True(t, accepts(t, a, domain.Word{domain.Datum("b", 3)}))
}

func TestCCA_UnconstrainedTransition(t *testing.T) {
	d := twiceCCA()
	d.Transitions[0].Constraint = nil
	a := compile(t, domain.VariantCCA, d)

	assert.True(t, accepts(t, a, domain.Word{
		domain.Datum("a", 1), domain.Datum("a", 1), domain.Datum("a", 1), domain.Datum("a", 2), domain.Datum("a", 2), domain.Datum("b", 2),
	}))
}

func TestCCA_EmptinessUnsupported(t *testing.T) {
	a := compile(t, domain.VariantCCA, twiceCCA())
	_, err := a.Emptiness(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}
