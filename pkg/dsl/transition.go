package dsl

import "github.com/aretw0/automata/pkg/domain"

// TransitionBuilder provides a fluent API for configuring a transition.
// Guards the family does not use are ignored by the engine.
type TransitionBuilder struct {
	t domain.Transition
}

// Register guards an RA transition: the value must equal the register content.
func (tb *TransitionBuilder) Register(name string) *TransitionBuilder {
	tb.t.Register = name
	return tb
}

// In guards a SAFA transition: the value must belong to set.
func (tb *TransitionBuilder) In(set string) *TransitionBuilder {
	tb.t.Check = &domain.SetCheck{Set: set}
	return tb
}

// NotIn guards a SAFA transition: the value must not belong to set.
func (tb *TransitionBuilder) NotIn(set string) *TransitionBuilder {
	tb.t.Check = &domain.SetCheck{Set: set, Negated: true}
	return tb
}

// When guards a CCA transition with a counter constraint.
func (tb *TransitionBuilder) When(op domain.Operator, bound int) *TransitionBuilder {
	tb.t.Constraint = &domain.Constraint{Op: op, Bound: bound}
	return tb
}

// Add increments the CCA counter of the value by n.
func (tb *TransitionBuilder) Add(n int) *TransitionBuilder {
	tb.t.Instruction = domain.Instruction{Add: n}
	return tb
}

// Reset sets the CCA counter of the value back to zero.
func (tb *TransitionBuilder) Reset() *TransitionBuilder {
	tb.t.Instruction = domain.Instruction{Reset: true}
	return tb
}

// LastIn guards a CMA transition: the value was last read in state. The
// empty state means the value was never read.
func (tb *TransitionBuilder) LastIn(state domain.State) *TransitionBuilder {
	tb.t.Remembered = state
	return tb
}

// To adds plain destinations.
func (tb *TransitionBuilder) To(states ...domain.State) *TransitionBuilder {
	tb.t.Destinations = append(tb.t.Destinations, domain.To(states...)...)
	return tb
}

// ToInserting adds a SAFA destination that inserts the value into set.
func (tb *TransitionBuilder) ToInserting(state domain.State, set string) *TransitionBuilder {
	tb.t.Destinations = append(tb.t.Destinations, domain.Destination{State: state, Insert: set})
	return tb
}
