package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LogHooks logs evaluation and emptiness outcomes. Per-case events are logged
// at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvaluationStart: func(ctx context.Context, e *domain.EvaluationEvent) {
			logger.DebugContext(ctx, "evaluation_start", "run_id", e.RunID, "variant", e.Variant, "cases", e.Cases)
		},
		OnCaseDecided: func(ctx context.Context, e *domain.CaseEvent) {
			logger.DebugContext(ctx, "case_decided",
				"run_id", e.RunID,
				"index", e.Index,
				"length", e.Length,
				"accepted", e.Accepted,
				"explored", e.Explored,
			)
		},
		OnEvaluationEnd: func(ctx context.Context, e *domain.EvaluationEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "evaluation_end", "run_id", e.RunID, "variant", e.Variant,
					"kind", domain.KindOf(e.Err), "error", e.Err)
				return
			}
			logger.InfoContext(ctx, "evaluation_end",
				"run_id", e.RunID,
				"variant", e.Variant,
				"cases", e.Cases,
				"accepted", e.Accepted,
				"duration", e.Duration,
			)
		},
		OnEmptinessChecked: func(ctx context.Context, e *domain.EmptinessEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "emptiness_checked", "run_id", e.RunID, "variant", e.Variant,
					"kind", domain.KindOf(e.Err), "error", e.Err)
				return
			}
			logger.InfoContext(ctx, "emptiness_checked",
				"run_id", e.RunID,
				"variant", e.Variant,
				"empty", e.Empty,
				"visited", e.Visited,
				"duration", e.Duration,
			)
		},
	}
}
