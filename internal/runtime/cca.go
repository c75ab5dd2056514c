package runtime

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Counters is the CCA payload: one counter per data class and the last
// message read. Unseen classes count zero.
type Counters struct {
	Classes map[string]int
	Message domain.Element
}

type ccaSemantics struct {
	initial []domain.State
	final   stateSet
}

func newCCA(d *domain.Description, idx *Index) Automaton {
	return &machine[Counters]{
		variant: domain.VariantCCA,
		index:   idx,
		sem:     &ccaSemantics{initial: d.Initial, final: newStateSet(d.Final)},
		metered: true,
	}
}

func (s *ccaSemantics) Initial() []Configuration[Counters] {
	out := make([]Configuration[Counters], len(s.initial))
	for i, q := range s.initial {
		out[i] = Configuration[Counters]{State: q, Payload: Counters{Classes: map[string]int{}}}
	}
	return out
}

func (s *ccaSemantics) Fire(c Configuration[Counters], t *domain.Transition, e domain.Element) []Configuration[Counters] {
	if !e.HasValue {
		return nil
	}
	class := domain.ValueKey(e.Value)
	count := c.Payload.Classes[class]
	if t.Constraint != nil && !t.Constraint.Holds(count) {
		return nil
	}

	p := Counters{Classes: c.Payload.Classes, Message: e}
	if next := t.Instruction.Apply(count); next != count {
		p.Classes = make(map[string]int, len(c.Payload.Classes)+1)
		for k, v := range c.Payload.Classes {
			p.Classes[k] = v
		}
		if next == 0 {
			delete(p.Classes, class)
		} else {
			p.Classes[class] = next
		}
	}

	out := make([]Configuration[Counters], len(t.Destinations))
	for i, d := range t.Destinations {
		out[i] = Configuration[Counters]{State: d.State, Payload: p}
	}
	return out
}

// Key covers the counters only; the last message is kept for tracing.
func (s *ccaSemantics) Key(p Counters) string {
	keys := make([]string, 0, len(p.Classes))
	for k := range p.Classes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		writeKeyPart(&b, k)
		b.WriteString(strconv.Itoa(p.Classes[k]))
	}
	return b.String()
}

func (s *ccaSemantics) Accepting(c Configuration[Counters]) bool {
	return s.final[c.State]
}
