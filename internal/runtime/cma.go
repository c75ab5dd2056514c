package runtime

import (
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

const (
	// AcceptanceClassMemory accepts when the run ends in a state that is both
	// local and global final and every class was last read in a local final
	// state.
	AcceptanceClassMemory = "class-memory"
	// AcceptanceLocalGlobal accepts when the run ends in a local final state
	// and visited a global final state at some point.
	AcceptanceLocalGlobal = "local-global"
)

// Memory is the CMA payload: for every data class the state in which it was
// last read. VisitedGlobal records whether the run went through a global
// final state.
type Memory struct {
	Last          map[string]domain.State
	VisitedGlobal bool
}

// FinalSets holds the CMA local and global final states.
type FinalSets struct {
	Local  map[domain.State]bool
	Global map[domain.State]bool
}

// MemoryAcceptance is the composite acceptance rule of a CMA.
type MemoryAcceptance interface {
	Accepts(c Configuration[Memory], final FinalSets) bool
}

// ClassMemoryAcceptance is the class memory automaton acceptance condition.
type ClassMemoryAcceptance struct{}

func (ClassMemoryAcceptance) Accepts(c Configuration[Memory], f FinalSets) bool {
	if !f.Local[c.State] || !f.Global[c.State] {
		return false
	}
	for _, q := range c.Payload.Last {
		if !f.Local[q] {
			return false
		}
	}
	return true
}

// LocalGlobalAcceptance only looks at the run, not at the classes.
type LocalGlobalAcceptance struct{}

func (LocalGlobalAcceptance) Accepts(c Configuration[Memory], f FinalSets) bool {
	return f.Local[c.State] && c.Payload.VisitedGlobal
}

type cmaSemantics struct {
	initial    domain.State
	final      FinalSets
	acceptance MemoryAcceptance
}

func newCMA(d *domain.Description, idx *Index, acc MemoryAcceptance, strategy string) Automaton {
	return &machine[Memory]{
		variant: domain.VariantCMA,
		index:   idx,
		sem: &cmaSemantics{
			initial:    d.Initial[0],
			final:      FinalSets{Local: newStateSet(d.LocalFinal), Global: newStateSet(d.GlobalFinal)},
			acceptance: acc,
		},
		metered:  true,
		strategy: strategy,
	}
}

func (s *cmaSemantics) Initial() []Configuration[Memory] {
	return []Configuration[Memory]{{
		State:   s.initial,
		Payload: Memory{Last: map[string]domain.State{}, VisitedGlobal: s.final.Global[s.initial]},
	}}
}

func (s *cmaSemantics) Fire(c Configuration[Memory], t *domain.Transition, e domain.Element) []Configuration[Memory] {
	if !e.HasValue {
		return nil
	}
	class := domain.ValueKey(e.Value)
	if c.Payload.Last[class] != t.Remembered {
		return nil
	}

	out := make([]Configuration[Memory], len(t.Destinations))
	for i, d := range t.Destinations {
		last := make(map[string]domain.State, len(c.Payload.Last)+1)
		for k, q := range c.Payload.Last {
			last[k] = q
		}
		last[class] = d.State
		out[i] = Configuration[Memory]{
			State:   d.State,
			Payload: Memory{Last: last, VisitedGlobal: c.Payload.VisitedGlobal || s.final.Global[d.State]},
		}
	}
	return out
}

func (s *cmaSemantics) Key(m Memory) string {
	keys := make([]string, 0, len(m.Last))
	for k := range m.Last {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	if m.VisitedGlobal {
		b.WriteString("g")
	}
	for _, k := range keys {
		writeKeyPart(&b, k)
		writeKeyPart(&b, m.Last[k])
	}
	return b.String()
}

func (s *cmaSemantics) Accepting(c Configuration[Memory]) bool {
	return s.acceptance.Accepts(c, s.final)
}
