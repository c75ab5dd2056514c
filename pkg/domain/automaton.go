package domain

import "sort"

// Update is one entry of the RA update map U : Q × Σ → register.
type Update struct {
	State    State  `json:"state" yaml:"state"`
	Symbol   Symbol `json:"symbol" yaml:"symbol"`
	Register string `json:"register" yaml:"register"`
}

// Description is the structural definition of an automaton. It is treated as
// immutable once handed to the engine.
type Description struct {
	States      []State      `json:"states" yaml:"states"`
	Alphabet    []Symbol     `json:"alphabet" yaml:"alphabet"`
	Initial     []State      `json:"initial" yaml:"initial"`
	Final       []State      `json:"final,omitempty" yaml:"final,omitempty"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`

	// CMA local and global final states.
	LocalFinal  []State `json:"local_final,omitempty" yaml:"local_final,omitempty"`
	GlobalFinal []State `json:"global_final,omitempty" yaml:"global_final,omitempty"`

	// RA initial register valuation (nil is ⊥) and update map.
	Registers map[string]Value `json:"registers,omitempty" yaml:"registers,omitempty"`
	Updates   []Update         `json:"updates,omitempty" yaml:"updates,omitempty"`

	// SAFA set names and the synchronization discipline used for checks.
	Sets       []string `json:"sets,omitempty" yaml:"sets,omitempty"`
	Discipline string   `json:"discipline,omitempty" yaml:"discipline,omitempty"`

	// CMA acceptance rule name.
	Acceptance string `json:"acceptance,omitempty" yaml:"acceptance,omitempty"`
}

// RegisterNames returns the register names in ascending order, which is the
// order used to lay out register valuations.
func (d *Description) RegisterNames() []string {
	names := make([]string, 0, len(d.Registers))
	for name := range d.Registers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateFor looks up U(q, a).
func (d *Description) UpdateFor(q State, a Symbol) (string, bool) {
	for _, u := range d.Updates {
		if u.State == q && u.Symbol == a {
			return u.Register, true
		}
	}
	return "", false
}

// Clone returns a deep copy, so that callers can keep mutating their own
// instance without affecting a running evaluation.
func (d *Description) Clone() *Description {
	if d == nil {
		return nil
	}
	c := &Description{
		States:      append([]State(nil), d.States...),
		Alphabet:    append([]Symbol(nil), d.Alphabet...),
		Initial:     append([]State(nil), d.Initial...),
		Final:       append([]State(nil), d.Final...),
		LocalFinal:  append([]State(nil), d.LocalFinal...),
		GlobalFinal: append([]State(nil), d.GlobalFinal...),
		Updates:     append([]Update(nil), d.Updates...),
		Sets:        append([]string(nil), d.Sets...),
		Discipline:  d.Discipline,
		Acceptance:  d.Acceptance,
	}
	if d.Registers != nil {
		c.Registers = make(map[string]Value, len(d.Registers))
		for k, v := range d.Registers {
			c.Registers[k] = v
		}
	}
	c.Transitions = make([]Transition, len(d.Transitions))
	for i, t := range d.Transitions {
		ct := t
		ct.Destinations = append([]Destination(nil), t.Destinations...)
		if t.Check != nil {
			check := *t.Check
			ct.Check = &check
		}
		if t.Constraint != nil {
			con := *t.Constraint
			ct.Constraint = &con
		}
		c.Transitions[i] = ct
	}
	return c
}
