package domain

import "fmt"

// Validate checks the structural invariants of the description for the given
// variant. It reports every problem found at once as a *ValidationError.
func (d *Description) Validate(v Variant) error {
	if d == nil {
		return &ValidationError{Variant: v, Problems: []string{"description is missing"}}
	}
	p := &problems{}

	states := p.names("state", d.States)
	alphabet := p.names("symbol", d.Alphabet)
	sets := map[string]bool{}
	if v == VariantSAFA {
		sets = p.names("set", d.Sets)
	}

	switch {
	case len(d.Initial) == 0:
		p.add("at least one initial state is required")
	case !v.MultipleInitial() && len(d.Initial) > 1:
		p.add("%s requires exactly one initial state, got %d", v, len(d.Initial))
	}
	p.subset("initial", d.Initial, states)
	p.subset("final", d.Final, states)

	if v == VariantCMA {
		p.subset("local final", d.LocalFinal, states)
		p.subset("global final", d.GlobalFinal, states)
	}

	if v == VariantRA {
		d.validateRegisters(p, states, alphabet)
	}

	for i, t := range d.Transitions {
		label := fmt.Sprintf("transition %d (%s, %s)", i, t.Source, t.Symbol)
		if !states[t.Source] {
			p.add("%s: unknown source state %q", label, t.Source)
		}
		if !alphabet[t.Symbol] {
			p.add("%s: symbol %q is not in the alphabet", label, t.Symbol)
		}
		if len(t.Destinations) == 0 {
			p.add("%s: at least one destination is required", label)
		}
		for _, dst := range t.Destinations {
			if !states[dst.State] {
				p.add("%s: unknown destination state %q", label, dst.State)
			}
			if dst.Insert != "" && !sets[dst.Insert] {
				p.add("%s: insertion into unknown set %q", label, dst.Insert)
			}
		}
		switch v {
		case VariantRA:
			if _, ok := d.Registers[t.Register]; t.Register != "" && !ok {
				p.add("%s: unknown register %q", label, t.Register)
			}
		case VariantSAFA:
			if t.Check != nil && !sets[t.Check.Set] {
				p.add("%s: check on unknown set %q", label, t.Check.Set)
			}
		case VariantCCA:
			if c := t.Constraint; c != nil {
				if !c.Op.Valid() {
					p.add("%s: unknown comparison operator %q", label, c.Op)
				}
				if c.Bound < 0 {
					p.add("%s: constraint bound must be non-negative, got %d", label, c.Bound)
				}
			}
			if t.Instruction.Add < 0 {
				p.add("%s: counter increment must be non-negative, got %d", label, t.Instruction.Add)
			}
		case VariantCMA:
			if t.Remembered != "" && !states[t.Remembered] {
				p.add("%s: remembered state %q is not a state", label, t.Remembered)
			}
		}
	}

	return p.err(v)
}

func (d *Description) validateRegisters(p *problems, states, alphabet map[string]bool) {
	seen := map[string]string{}
	for _, name := range d.RegisterNames() {
		if name == "" {
			p.add("register names must not be empty")
			continue
		}
		val := d.Registers[name]
		if val == nil {
			continue
		}
		key := ValueKey(val)
		if other, dup := seen[key]; dup {
			p.add("registers %q and %q hold the same initial value %s", other, name, FormatValue(val))
			continue
		}
		seen[key] = name
	}

	assigned := map[[2]string]string{}
	for _, u := range d.Updates {
		if !states[u.State] {
			p.add("update (%s, %s): unknown state %q", u.State, u.Symbol, u.State)
		}
		if !alphabet[u.Symbol] {
			p.add("update (%s, %s): symbol %q is not in the alphabet", u.State, u.Symbol, u.Symbol)
		}
		if _, ok := d.Registers[u.Register]; !ok {
			p.add("update (%s, %s): unknown register %q", u.State, u.Symbol, u.Register)
		}
		k := [2]string{u.State, u.Symbol}
		if prev, dup := assigned[k]; dup && prev != u.Register {
			p.add("update (%s, %s): conflicting registers %q and %q", u.State, u.Symbol, prev, u.Register)
		}
		assigned[k] = u.Register
	}
}

type problems struct {
	list []string
}

func (p *problems) add(format string, args ...any) {
	p.list = append(p.list, fmt.Sprintf(format, args...))
}

func (p *problems) names(kind string, names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			p.add("%s names must not be empty", kind)
			continue
		}
		set[n] = true
	}
	return set
}

func (p *problems) subset(label string, sub []State, states map[string]bool) {
	for _, s := range sub {
		if !states[s] {
			p.add("%s state %q is not a state", label, s)
		}
	}
}

func (p *problems) err(v Variant) error {
	if len(p.list) == 0 {
		return nil
	}
	return &ValidationError{Variant: v, Problems: p.list}
}
