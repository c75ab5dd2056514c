package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
)

type indexKey struct {
	source domain.State
	symbol domain.Symbol
}

// Index groups transitions by (source, symbol) for constant time lookup.
type Index struct {
	bySource map[indexKey][]*domain.Transition
	outgoing map[domain.State][]*domain.Transition
	size     int
}

// NewIndex builds the index in a single pass over the transitions. The
// declaration order is preserved within each group.
func NewIndex(transitions []domain.Transition) *Index {
	idx := &Index{
		bySource: make(map[indexKey][]*domain.Transition, len(transitions)),
		outgoing: make(map[domain.State][]*domain.Transition),
	}
	for i := range transitions {
		t := &transitions[i]
		k := indexKey{source: t.Source, symbol: t.Symbol}
		idx.bySource[k] = append(idx.bySource[k], t)
		idx.outgoing[t.Source] = append(idx.outgoing[t.Source], t)
		idx.size++
	}
	return idx
}

// Lookup returns the candidate transitions; an empty result means the branch dies.
func (idx *Index) Lookup(source domain.State, symbol domain.Symbol) []*domain.Transition {
	return idx.bySource[indexKey{source: source, symbol: symbol}]
}

// From returns every transition leaving source, regardless of its symbol.
func (idx *Index) From(source domain.State) []*domain.Transition {
	return idx.outgoing[source]
}

// Len is the number of indexed transitions.
func (idx *Index) Len() int {
	return idx.size
}
