package runtime_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

// repeatSAFA collects values read with "a" and accepts once "b" reads one of them.
func repeatSAFA() *domain.Description {
	return &domain.Description{
		States:   []domain.State{"q0", "q1"},
		Alphabet: []domain.Symbol{"a", "b"},
		Initial:  []domain.State{"q0"},
		Final:    []domain.State{"q1"},
		Sets:     []string{"h"},
		Transitions: []domain.Transition{
			{Source: "q0", Symbol: "a", Destinations: []domain.Destination{{State: "q0", Insert: "h"}}},
			{Source: "q0", Symbol: "b", Check: &domain.SetCheck{Set: "h"}, Destinations: domain.To("q1")},
		},
	}
}

func TestSAFA_Membership(t *testing.T) {
	a := compile(t, domain.VariantSAFA, repeatSAFA())

	assert.True(t, accepts(t, a, domain.Word{domain.Datum("a", 1), domain.Datum("b", 1)}))
	assert.True(t, accepts(t, a, domain.Word{domain.Datum("a", 1), domain.Datum("a", 2), domain.Datum("b", 1)}))
	assert.False(t, accepts(t, a, domain.Word{domain.Datum("a", 1), domain.Datum("b", 2)}))
	assert.False(t, accepts(t, a, domain.Word{domain.Datum("b", 1)}))
	assert.False(t, accepts(t, a, domain.Word{domain.Sym("a"), domain.Datum("b", 1)}), "insertion needs a value")
}

func TestSAFA_NegatedCheck(t *testing.T) {
	d := &domain.Description{
		States:   []domain.State{"q0"},
		Alphabet: []domain.Symbol{"a"},
		Initial:  []domain.State{"q0"},
		Final:    []domain.State{"q0"},
		Sets:     []string{"seen"},
		Transitions: []domain.Transition{
			{
				Source:       "q0",
				Symbol:       "a",
				Check:        &domain.SetCheck{Set: "seen", Negated: true},
				Destinations: []domain.Destination{{State: "q0", Insert: "seen"}},
			},
		},
	}
	a := compile(t, domain.VariantSAFA, d)

	assert.True(t, accepts(t, a, domain.Word{domain.Datum("a", 1), domain.Datum("a", 2), domain.Datum("a", 3)}))
	assert.False(t, accepts(t, a, domain.Word{domain.Datum("a", 1), domain.Datum("a", 2), domain.Datum("a", 1)}))
}

func TestSAFA_PlainSymbols(t *testing.T) {
	d := &domain.Description{
		States:   []domain.State{"q0", "q1"},
		Alphabet: []domain.Symbol{"a"},
		Initial:  []domain.State{"q0"},
		Final:    []domain.State{"q1"},
		Transitions: []domain.Transition{
			{Source: "q0", Symbol: "a", Destinations: domain.To("q1")},
		},
	}
	a := compile(t, domain.VariantSAFA, d)
	assert.True(t, accepts(t, a, domain.Symbols("a")))
	assert.False(t, isEmpty(t, a))
}

func TestSAFA_Emptiness(t *testing.T) {
	assert.False(t, isEmpty(t, compile(t, domain.VariantSAFA, repeatSAFA())))

	// Without any insertion the membership check can never hold.
	d := repeatSAFA()
	d.Transitions[0].Destinations[0].Insert = ""
	assert.True(t, isEmpty(t, compile(t, domain.VariantSAFA, d)))

	// A negated check on an empty set is always satisfiable.
	d.Transitions[1].Check.Negated = true
	assert.False(t, isEmpty(t, compile(t, domain.VariantSAFA, d)))
}

func TestSAFA_EmptinessAgreesWithAcceptance(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 19))
	words := dataWordsUpTo([]domain.Symbol{"a", "b"}, []any{1, 2}, 3)

	for round := 0; round < 40; round++ {
		d := randomSAFA(rng)
		a := compile(t, domain.VariantSAFA, d)
		empty := isEmpty(t, a)
		for _, w := range words {
			if accepts(t, a, w) {
				assert.False(t, empty, "round %d accepts %s but was reported empty", round, w)
				break
			}
		}
	}
}

type invertedDiscipline struct{}

func (invertedDiscipline) Admits(_ string, check domain.SetCheck, contains bool) bool {
	return contains == check.Negated
}

func (invertedDiscipline) Satisfiable(string, domain.SetCheck, bool) bool { return true }

func TestSAFA_PluggableDiscipline(t *testing.T) {
	d := repeatSAFA()
	d.Discipline = "inverted"
	a := compile(t, domain.VariantSAFA, d, runtime.WithSetDiscipline("inverted", invertedDiscipline{}))

	assert.False(t, accepts(t, a, domain.Word{domain.Datum("a", 1), domain.Datum("b", 1)}))
	assert.True(t, accepts(t, a, domain.Word{domain.Datum("a", 1), domain.Datum("b", 2)}))

	d.Discipline = "unheard-of"
	_, err := runtime.Compile(domain.VariantSAFA, d)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// stickyDiscipline only lets a positive check through on the set the run
// engaged last.
type stickyDiscipline struct{}

func (stickyDiscipline) Admits(marker string, check domain.SetCheck, contains bool) bool {
	if check.Negated {
		return !contains
	}
	return contains && marker == check.Set
}

func (stickyDiscipline) Satisfiable(marker string, check domain.SetCheck, nonEmpty bool) bool {
	return check.Negated || (nonEmpty && marker == check.Set)
}

// markerSAFA reaches q2 twice with equal sets: once with marker h and once
// with marker g. Only the h run can pass the final p(h) check under the
// sticky discipline.
func markerSAFA() *domain.Description {
	return &domain.Description{
		States:     []domain.State{"q0", "q1", "q2", "q3"},
		Alphabet:   []domain.Symbol{"a", "b", "c"},
		Initial:    []domain.State{"q0"},
		Final:      []domain.State{"q3"},
		Sets:       []string{"h", "g"},
		Discipline: "sticky",
		Transitions: []domain.Transition{
			{Source: "q0", Symbol: "a", Destinations: []domain.Destination{{State: "q1", Insert: "h"}}},
			{Source: "q1", Symbol: "b", Check: &domain.SetCheck{Set: "g", Negated: true}, Destinations: domain.To("q2")},
			{Source: "q1", Symbol: "b", Check: &domain.SetCheck{Set: "h"}, Destinations: domain.To("q2")},
			{Source: "q2", Symbol: "c", Check: &domain.SetCheck{Set: "h"}, Destinations: domain.To("q3")},
		},
	}
}

func TestSAFA_MarkerDiscipline(t *testing.T) {
	sticky := runtime.WithSetDiscipline("sticky", stickyDiscipline{})
	word := domain.Word{domain.Datum("a", 1), domain.Datum("b", 1), domain.Datum("c", 1)}

	a := compile(t, domain.VariantSAFA, markerSAFA(), sticky)
	assert.True(t, accepts(t, a, word), "the run keeping marker h must survive deduplication")
	assert.False(t, isEmpty(t, a))

	// Without the p(h) branch the only run arrives at q2 with marker g.
	d := markerSAFA()
	d.Transitions = append(d.Transitions[:2], d.Transitions[3])
	a = compile(t, domain.VariantSAFA, d, sticky)
	assert.False(t, accepts(t, a, word))
	assert.True(t, isEmpty(t, a))

	d.Discipline = ""
	a = compile(t, domain.VariantSAFA, d)
	assert.True(t, accepts(t, a, word))
	assert.False(t, isEmpty(t, a))
}

func randomSAFA(rng *rand.Rand) *domain.Description {
	d := &domain.Description{
		States:   []domain.State{"q0", "q1", "q2"},
		Alphabet: []domain.Symbol{"a", "b"},
		Initial:  []domain.State{"q0"},
		Final:    []domain.State{"q2"},
		Sets:     []string{"h", "g"},
	}
	for _, q := range d.States {
		for _, sym := range d.Alphabet {
			if rng.IntN(2) == 0 {
				continue
			}
			t := domain.Transition{Source: q, Symbol: sym}
			if rng.IntN(2) == 0 {
				t.Check = &domain.SetCheck{Set: d.Sets[rng.IntN(2)], Negated: rng.IntN(2) == 0}
			}
			dst := domain.Destination{State: d.States[rng.IntN(3)]}
			if rng.IntN(2) == 0 {
				dst.Insert = d.Sets[rng.IntN(2)]
			}
			t.Destinations = []domain.Destination{dst}
			d.Transitions = append(d.Transitions, t)
		}
	}
	return d
}

func dataWordsUpTo(alphabet []domain.Symbol, values []any, max int) []domain.Word {
	var letters []domain.Element
	for _, a := range alphabet {
		for _, v := range values {
			letters = append(letters, domain.Datum(a, v))
		}
	}
	words := []domain.Word{{}}
	frontier := []domain.Word{{}}
	for l := 1; l <= max; l++ {
		var next []domain.Word
		for _, w := range frontier {
			for _, e := range letters {
				next = append(next, append(append(domain.Word{}, w...), e))
			}
		}
		words = append(words, next...)
		frontier = next
	}
	return words
}
