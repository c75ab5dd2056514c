package automata_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
)

// ExampleEngine_Evaluate decides data words against a register automaton that
// stores the value read with "set".
func ExampleEngine_Evaluate() {
	desc := &domain.Description{
		States:    []domain.State{"q0", "q1"},
		Alphabet:  []domain.Symbol{"set", "other"},
		Initial:   []domain.State{"q0"},
		Final:     []domain.State{"q1"},
		Registers: map[string]domain.Value{"R": 0},
		Updates:   []domain.Update{{State: "q0", Symbol: "set", Register: "R"}},
		Transitions: []domain.Transition{
			{Source: "q0", Symbol: "set", Destinations: domain.To("q1")},
		},
	}

	eng := automata.New()
	verdicts, err := eng.Evaluate(context.Background(), domain.EvaluationRequest{
		Variant:     domain.VariantRA,
		Description: desc,
		Words: []domain.Word{
			{domain.Datum("set", 5)},
			{domain.Datum("other", 5)},
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(verdicts)
	// Output: [true false]
}

// ExampleEngine_IsEmpty checks an NFA whose only final state is unreachable.
func ExampleEngine_IsEmpty() {
	desc := &domain.Description{
		States:   []domain.State{"q0", "q1", "q2"},
		Alphabet: []domain.Symbol{"a", "b"},
		Initial:  []domain.State{"q0"},
		Final:    []domain.State{"q2"},
		Transitions: []domain.Transition{
			{Source: "q0", Symbol: "a", Destinations: domain.To("q0", "q1")},
		},
	}

	eng := automata.New()
	empty, err := eng.IsEmpty(context.Background(), domain.VariantNFA, desc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("empty:", empty)

	_, err = eng.IsEmpty(context.Background(), domain.VariantCMA, desc)
	fmt.Println("CMA supported:", !errors.Is(err, domain.ErrUnsupportedOperation))
	// Output:
	// empty: true
	// CMA supported: false
}
