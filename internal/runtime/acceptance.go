package runtime

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Verdict is the outcome of deciding a single word.
type Verdict struct {
	Accepted bool
	// Explored counts the successor configurations generated.
	Explored int
	// Consumed is the number of elements read before the run was decided.
	Consumed int
}

// Quota caps the successors one evaluation may generate. A zero Limit
// disables the cap.
type Quota struct {
	Variant domain.Variant
	Limit   int
	used    int
}

func (q *Quota) charge(n int) error {
	q.used += n
	if q.Limit > 0 && q.used > q.Limit {
		return &domain.BudgetExceededError{Variant: q.Variant, Explored: q.used, Limit: q.Limit}
	}
	return nil
}

// Accepts runs the breadth-first existential search: the word is accepted iff
// some configuration reachable by consuming it satisfies the acceptance
// predicate. Configurations are deduplicated per step by (state, payload key).
func Accepts[P any](ctx context.Context, sem Semantics[P], idx *Index, word domain.Word, quota *Quota) (Verdict, error) {
	if quota == nil {
		quota = &Quota{}
	}
	live := dedup(sem, sem.Initial())

	for i, elem := range word {
		if err := ctx.Err(); err != nil {
			return Verdict{Explored: quota.used, Consumed: i}, err
		}

		var next []Configuration[P]
		seen := make(map[string]bool, len(live))
		for _, c := range live {
			for _, t := range idx.Lookup(c.State, elem.Symbol) {
				succ := sem.Fire(c, t, elem)
				if err := quota.charge(len(succ)); err != nil {
					return Verdict{Explored: quota.used, Consumed: i}, err
				}
				for _, s := range succ {
					k := dedupKey(s.State, sem.Key(s.Payload))
					if seen[k] {
						continue
					}
					seen[k] = true
					next = append(next, s)
				}
			}
		}

		if len(next) == 0 {
			return Verdict{Explored: quota.used, Consumed: i + 1}, nil
		}
		live = next
	}

	for _, c := range live {
		if sem.Accepting(c) {
			return Verdict{Accepted: true, Explored: quota.used, Consumed: len(word)}, nil
		}
	}
	return Verdict{Explored: quota.used, Consumed: len(word)}, nil
}

func dedup[P any](sem Semantics[P], configs []Configuration[P]) []Configuration[P] {
	seen := make(map[string]bool, len(configs))
	out := make([]Configuration[P], 0, len(configs))
	for _, c := range configs {
		k := dedupKey(c.State, sem.Key(c.Payload))
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
