package runtime

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

type nfaSemantics struct {
	initial []domain.State
	final   stateSet
}

func (s *nfaSemantics) Initial() []Configuration[Unit] {
	out := make([]Configuration[Unit], len(s.initial))
	for i, q := range s.initial {
		out[i] = Configuration[Unit]{State: q}
	}
	return out
}

func (s *nfaSemantics) Fire(c Configuration[Unit], t *domain.Transition, _ domain.Element) []Configuration[Unit] {
	out := make([]Configuration[Unit], len(t.Destinations))
	for i, d := range t.Destinations {
		out[i] = Configuration[Unit]{State: d.State}
	}
	return out
}

func (s *nfaSemantics) Key(Unit) string { return "" }

func (s *nfaSemantics) Accepting(c Configuration[Unit]) bool {
	return s.final[c.State]
}

func newNFA(d *domain.Description, idx *Index) Automaton {
	sem := &nfaSemantics{initial: d.Initial, final: newStateSet(d.Final)}
	return &machine[Unit]{
		variant: domain.VariantNFA,
		index:   idx,
		sem:     sem,
		graph: func(ctx context.Context) (Reachability, error) {
			return Reach(ctx, stateGraph(d.Initial, idx, sem.final))
		},
	}
}

// stateGraph ignores symbols and data: an edge exists whenever some
// transition connects the two states.
func stateGraph(roots []domain.State, idx *Index, final stateSet) Graph[domain.State] {
	return Graph[domain.State]{
		Roots: roots,
		Successors: func(q domain.State) []domain.State {
			var out []domain.State
			for _, t := range idx.From(q) {
				out = append(out, t.Targets()...)
			}
			return out
		},
		Accepting: func(q domain.State) bool { return final[q] },
	}
}
