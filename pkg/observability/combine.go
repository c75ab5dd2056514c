package observability

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Combine merges hook sets. Each callback runs the non-nil callbacks of every
// set, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnEvaluationStart = chain(out.OnEvaluationStart, h.OnEvaluationStart)
		out.OnCaseDecided = chain(out.OnCaseDecided, h.OnCaseDecided)
		out.OnEvaluationEnd = chain(out.OnEvaluationEnd, h.OnEvaluationEnd)
		out.OnEmptinessChecked = chain(out.OnEmptinessChecked, h.OnEmptinessChecked)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
