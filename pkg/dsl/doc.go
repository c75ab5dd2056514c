/*
Package dsl provides a fluent Go builder for automaton descriptions.

It is an alternative to the wire configuration maps when automata are
defined in code, for instance in tests or when they are generated.

Example usage:

	b := dsl.New(domain.VariantRA).
		States("q0", "q1").
		Alphabet("set", "get").
		Initial("q0").
		Final("q1").
		Registers(map[string]any{"R": nil}).
		Update("q0", "set", "R")

	b.On("q0", "set").To("q0")
	b.On("q0", "get").Register("R").To("q1")

	desc, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	verdicts, err := engine.Evaluate(ctx, domain.EvaluationRequest{
		Variant:     domain.VariantRA,
		Description: desc,
		Words:       []domain.Word{{domain.Datum("set", 7), domain.Datum("get", 7)}},
	})
*/
package dsl
