package runtime

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Registers is an RA valuation laid out by ascending register name. A nil
// entry is an empty register.
type Registers []domain.Value

type raSemantics struct {
	initial  domain.State
	final    stateSet
	start    Registers
	position map[string]int
	updates  map[indexKey]int
}

func newRA(d *domain.Description, idx *Index) Automaton {
	names := d.RegisterNames()
	sem := &raSemantics{
		initial:  d.Initial[0],
		final:    newStateSet(d.Final),
		start:    make(Registers, len(names)),
		position: make(map[string]int, len(names)),
		updates:  make(map[indexKey]int, len(d.Updates)),
	}
	for i, name := range names {
		sem.position[name] = i
		sem.start[i] = domain.NormalizeValue(d.Registers[name])
	}
	for _, u := range d.Updates {
		sem.updates[indexKey{source: u.State, symbol: u.Symbol}] = sem.position[u.Register]
	}
	return &machine[Registers]{
		variant: domain.VariantRA,
		index:   idx,
		sem:     sem,
		metered: true,
	}
}

func (s *raSemantics) Initial() []Configuration[Registers] {
	return []Configuration[Registers]{{State: s.initial, Payload: s.start}}
}

// Fire implements the register discipline: an unguarded transition stores
// the value in U(q, a) if defined. A transition guarded by register i fires
// when i already holds the value, or when the value is fresh and U(q, a) = i,
// in which case the value is stored in i.
func (s *raSemantics) Fire(c Configuration[Registers], t *domain.Transition, e domain.Element) []Configuration[Registers] {
	if !e.HasValue {
		return nil
	}
	datum := domain.NormalizeValue(e.Value)
	target, hasUpdate := s.updates[indexKey{source: t.Source, symbol: t.Symbol}]

	regs := c.Payload
	switch {
	case t.Register == "":
		if hasUpdate {
			regs = regs.with(target, datum)
		}
	case regs.holds(s.position[t.Register], datum):
	case hasUpdate && target == s.position[t.Register] && regs.fresh(datum):
		regs = regs.with(target, datum)
	default:
		return nil
	}

	out := make([]Configuration[Registers], len(t.Destinations))
	for i, d := range t.Destinations {
		out[i] = Configuration[Registers]{State: d.State, Payload: regs}
	}
	return out
}

func (s *raSemantics) Key(r Registers) string {
	var b strings.Builder
	for _, v := range r {
		writeKeyPart(&b, domain.ValueKey(v))
	}
	return b.String()
}

func (s *raSemantics) Accepting(c Configuration[Registers]) bool {
	return s.final[c.State]
}

func (r Registers) holds(i int, v domain.Value) bool {
	return r[i] != nil && domain.ValueKey(r[i]) == domain.ValueKey(v)
}

func (r Registers) fresh(v domain.Value) bool {
	for i := range r {
		if r.holds(i, v) {
			return false
		}
	}
	return true
}

func (r Registers) with(i int, v domain.Value) Registers {
	out := make(Registers, len(r))
	copy(out, r)
	out[i] = v
	return out
}
