package runtime

import (
	"context"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

const (
	// DisciplineMembership is the default SAFA discipline: p(h) holds iff the
	// value belongs to h, !p(h) iff it does not.
	DisciplineMembership = "membership"
)

// SetDiscipline decides SAFA set checks. marker is the set the run engaged
// last, by a check or an insertion, and is empty before the first one.
type SetDiscipline interface {
	// Admits decides a check during acceptance, knowing whether the current
	// value belongs to the checked set.
	Admits(marker string, check domain.SetCheck, contains bool) bool
	// Satisfiable decides a check during the emptiness search, where only
	// the emptiness of the checked set is known and fresh values are always
	// available.
	Satisfiable(marker string, check domain.SetCheck, nonEmpty bool) bool
}

// MarkerBlind is implemented by disciplines that never look at the marker.
// Their configurations are deduplicated without it.
type MarkerBlind interface {
	IgnoresMarker() bool
}

// MembershipDiscipline is the plain set membership reading of checks.
type MembershipDiscipline struct{}

func (MembershipDiscipline) Admits(_ string, check domain.SetCheck, contains bool) bool {
	return contains != check.Negated
}

func (MembershipDiscipline) Satisfiable(_ string, check domain.SetCheck, nonEmpty bool) bool {
	return check.Negated || nonEmpty
}

func (MembershipDiscipline) IgnoresMarker() bool { return true }

// SetContents is the SAFA payload: the values stored in each set, plus the
// last set engaged by a check or an insertion. Sets are shared between
// configurations and copied on write.
type SetContents struct {
	Sets   []map[string]domain.Value
	Marker string
}

type safaSemantics struct {
	initial    domain.State
	final      stateSet
	names      []string
	position   map[string]int
	discipline SetDiscipline
	// keyed reports whether the marker takes part in configuration keys.
	keyed bool
}

func newSAFA(d *domain.Description, idx *Index, disc SetDiscipline, strategy string) Automaton {
	sem := &safaSemantics{
		initial:    d.Initial[0],
		final:      newStateSet(d.Final),
		names:      d.Sets,
		position:   make(map[string]int, len(d.Sets)),
		discipline: disc,
		keyed:      true,
	}
	if mb, ok := disc.(MarkerBlind); ok && mb.IgnoresMarker() {
		sem.keyed = false
	}
	for i, h := range d.Sets {
		sem.position[h] = i
	}
	return &machine[SetContents]{
		variant:  domain.VariantSAFA,
		index:    idx,
		sem:      sem,
		metered:  len(d.Sets) > 0,
		strategy: strategy,
		graph: func(ctx context.Context) (Reachability, error) {
			return Reach(ctx, sem.graph(idx))
		},
	}
}

func (s *safaSemantics) Initial() []Configuration[SetContents] {
	sets := make([]map[string]domain.Value, len(s.names))
	for i := range sets {
		sets[i] = map[string]domain.Value{}
	}
	return []Configuration[SetContents]{{State: s.initial, Payload: SetContents{Sets: sets}}}
}

func (s *safaSemantics) Fire(c Configuration[SetContents], t *domain.Transition, e domain.Element) []Configuration[SetContents] {
	if !e.HasValue && (t.Check != nil || inserts(t)) {
		return nil
	}
	key := domain.ValueKey(e.Value)
	marker := c.Payload.Marker
	if t.Check != nil {
		_, contains := c.Payload.Sets[s.position[t.Check.Set]][key]
		if !s.discipline.Admits(marker, *t.Check, contains) {
			return nil
		}
		marker = t.Check.Set
	}

	out := make([]Configuration[SetContents], len(t.Destinations))
	for i, d := range t.Destinations {
		p := SetContents{Sets: c.Payload.Sets, Marker: marker}
		if d.Insert != "" {
			p = p.insert(s.position[d.Insert], key, domain.NormalizeValue(e.Value))
			p.Marker = d.Insert
		}
		out[i] = Configuration[SetContents]{State: d.State, Payload: p}
	}
	return out
}

// Key covers set contents, and the marker unless the discipline is blind
// to it.
func (s *safaSemantics) Key(p SetContents) string {
	var b strings.Builder
	if s.keyed {
		writeKeyPart(&b, p.Marker)
	}
	for _, set := range p.Sets {
		keys := make([]string, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('[')
		for _, k := range keys {
			writeKeyPart(&b, k)
		}
		b.WriteByte(']')
	}
	return b.String()
}

func (s *safaSemantics) Accepting(c Configuration[SetContents]) bool {
	return s.final[c.State]
}

func (p SetContents) insert(i int, key string, v domain.Value) SetContents {
	if _, ok := p.Sets[i][key]; ok {
		return p
	}
	sets := make([]map[string]domain.Value, len(p.Sets))
	copy(sets, p.Sets)
	grown := make(map[string]domain.Value, len(p.Sets[i])+1)
	for k, old := range p.Sets[i] {
		grown[k] = old
	}
	grown[key] = v
	sets[i] = grown
	return SetContents{Sets: sets, Marker: p.Marker}
}

func inserts(t *domain.Transition) bool {
	for _, d := range t.Destinations {
		if d.Insert != "" {
			return true
		}
	}
	return false
}

// safaNode abstracts a configuration by which sets are non-empty, one byte
// per set. Since values are unbounded, set contents beyond emptiness cannot
// block a run: fresh values always satisfy !p(h). The marker is tracked only
// for disciplines that read it.
type safaNode struct {
	state    domain.State
	nonEmpty string
	marker   string
}

func (s *safaSemantics) graph(idx *Index) Graph[safaNode] {
	return Graph[safaNode]{
		Roots: []safaNode{{state: s.initial, nonEmpty: strings.Repeat("0", len(s.names))}},
		Successors: func(n safaNode) []safaNode {
			var out []safaNode
			for _, t := range idx.From(n.state) {
				marker := n.marker
				if t.Check != nil {
					if !s.discipline.Satisfiable(n.marker, *t.Check, n.nonEmpty[s.position[t.Check.Set]] == '1') {
						continue
					}
					marker = t.Check.Set
				}
				for _, d := range t.Destinations {
					next := safaNode{state: d.State, nonEmpty: n.nonEmpty, marker: marker}
					if d.Insert != "" {
						i := s.position[d.Insert]
						next.nonEmpty = next.nonEmpty[:i] + "1" + next.nonEmpty[i+1:]
						next.marker = d.Insert
					}
					if !s.keyed {
						next.marker = ""
					}
					out = append(out, next)
				}
			}
			return out
		},
		Accepting: func(n safaNode) bool { return s.final[n.state] },
	}
}
