package runtime

import (
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Configuration is a snapshot of a run: the control state plus the
// variant-specific payload (registers, sets, counters, memory or nothing).
// Successors are always fresh values; a configuration is never mutated once
// it is part of a live set.
type Configuration[P any] struct {
	State   domain.State
	Payload P
}

// Semantics is the strategy a variant plugs into the shared search.
type Semantics[P any] interface {
	// Initial returns the starting configurations.
	Initial() []Configuration[P]

	// Fire evaluates the transition's guard against the configuration and the
	// input element. It returns one successor per destination when the guard
	// holds and nothing otherwise.
	Fire(c Configuration[P], t *domain.Transition, e domain.Element) []Configuration[P]

	// Key renders the payload canonically. Configurations with the same state
	// and key are interchangeable.
	Key(p P) string

	// Accepting is the acceptance predicate applied after the last element.
	Accepting(c Configuration[P]) bool
}

// Unit is the payload of variants that carry no data.
type Unit struct{}

func dedupKey(state domain.State, payloadKey string) string {
	return strconv.Quote(state) + payloadKey
}

// writeKeyPart appends s quoted. Quoted parts are self-delimiting, so
// distinct sequences of parts never render the same.
func writeKeyPart(b *strings.Builder, s string) {
	b.WriteString(strconv.Quote(s))
}

type stateSet map[domain.State]bool

func newStateSet(states []domain.State) stateSet {
	s := make(stateSet, len(states))
	for _, q := range states {
		s[q] = true
	}
	return s
}
