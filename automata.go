package automata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/automata/internal/logging"
	core "github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefaultBudget is the number of configurations a single data-carrying
// evaluation may explore when neither the engine nor the request sets one.
const DefaultBudget = 100_000

// SetDiscipline decides SAFA set checks. See WithSetDiscipline.
type SetDiscipline = core.SetDiscipline

// MarkerBlind marks a SetDiscipline that never reads the marker.
type MarkerBlind = core.MarkerBlind

// MemoryAcceptance is a CMA composite acceptance rule. See WithMemoryAcceptance.
type MemoryAcceptance = core.MemoryAcceptance

// Memory and FinalSets are the inputs of a MemoryAcceptance.
type (
	Memory              = core.Memory
	FinalSets           = core.FinalSets
	MemoryConfiguration = core.Configuration[core.Memory]
)

// Engine is the high-level entry point of the library. It is stateless
// between calls and safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	budget      int
	workers     int
	cache       ports.VerdictCache
	locker      ports.DistributedLocker
	lockTTL     time.Duration
	compileOpts []core.CompileOption
}

var _ ports.Evaluator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithExplorationBudget sets the default per-word exploration budget for
// RA, SAFA, CCA and CMA evaluations. Zero or a negative value disables the cap.
func WithExplorationBudget(n int) Option {
	return func(e *Engine) {
		e.budget = n
	}
}

// WithWorkers bounds how many words of a batch are decided in parallel.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithVerdictCache memoizes verdicts in the given cache.
func WithVerdictCache(cache ports.VerdictCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithLocker serializes cache misses per key through the given locker.
// It only has an effect together with WithVerdictCache.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = locker
		e.lockTTL = ttl
	}
}

// WithSetDiscipline registers a SAFA synchronization discipline that
// descriptions can select by name. The discipline's type and contents are
// part of every cached verdict key.
func WithSetDiscipline(name string, d SetDiscipline) Option {
	return func(e *Engine) {
		e.compileOpts = append(e.compileOpts, core.WithSetDiscipline(name, d))
	}
}

// WithMemoryAcceptance registers a CMA acceptance rule that descriptions can
// select by name.
func WithMemoryAcceptance(name string, a MemoryAcceptance) Option {
	return func(e *Engine) {
		e.compileOpts = append(e.compileOpts, core.WithMemoryAcceptance(name, a))
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		budget:  DefaultBudget,
		workers: runtime.GOMAXPROCS(0),
		lockTTL: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.workers < 1 {
		eng.workers = 1
	}
	return eng
}

// Evaluate decides every word of the request against the automaton. Verdicts
// are returned in input order. Any failure (validation, budget, cancellation)
// fails the whole batch; partial results are never returned.
func (e *Engine) Evaluate(ctx context.Context, req domain.EvaluationRequest) ([]bool, error) {
	start := time.Now()
	base := domain.EventBase{Timestamp: start, RunID: uuid.NewString(), Variant: req.Variant}
	logger := e.logger.With("run_id", base.RunID, "variant", req.Variant)

	e.emitStart(ctx, base, len(req.Words))

	results, err := e.evaluate(ctx, req, base, logger)

	accepted := 0
	for _, ok := range results {
		if ok {
			accepted++
		}
	}
	end := &domain.EvaluationEvent{
		EventBase: base,
		Cases:     len(req.Words),
		Accepted:  accepted,
		Duration:  time.Since(start),
		Err:       err,
	}
	end.Type = domain.EventEvaluationEnd
	end.Timestamp = time.Now()
	if e.hooks.OnEvaluationEnd != nil {
		e.hooks.OnEvaluationEnd(ctx, end)
	}

	if err != nil {
		logger.Warn("evaluation failed", "error", err, "kind", domain.KindOf(err))
		return nil, err
	}
	logger.Info("evaluation finished", "cases", len(req.Words), "accepted", accepted, "duration", end.Duration)
	return results, nil
}

func (e *Engine) evaluate(ctx context.Context, req domain.EvaluationRequest, base domain.EventBase, logger *slog.Logger) ([]bool, error) {
	variant, err := domain.ParseVariant(string(req.Variant))
	if err != nil {
		return nil, err
	}
	automaton, err := core.Compile(variant, req.Description, e.compileOpts...)
	if err != nil {
		return nil, err
	}

	budget := e.budget
	if req.Budget != 0 {
		budget = req.Budget
	}
	if budget < 0 {
		budget = 0
	}

	results := make([]bool, len(req.Words))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, word := range req.Words {
		g.Go(func() error {
			verdict, err := e.decide(gctx, automaton, req.Description, word, budget)
			if err != nil {
				return fmt.Errorf("test case %d: %w", i, err)
			}
			results[i] = verdict.Accepted
			logger.Debug("case decided", "index", i, "accepted", verdict.Accepted, "explored", verdict.Explored)
			if e.hooks.OnCaseDecided != nil {
				ev := &domain.CaseEvent{
					EventBase: base,
					Index:     i,
					Length:    len(word),
					Accepted:  verdict.Accepted,
					Explored:  verdict.Explored,
				}
				ev.Type = domain.EventCaseDecided
				ev.Timestamp = time.Now()
				e.hooks.OnCaseDecided(gctx, ev)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// decide consults the cache around a single acceptance run.
func (e *Engine) decide(ctx context.Context, a core.Automaton, desc *domain.Description, word domain.Word, budget int) (core.Verdict, error) {
	if e.cache == nil {
		return a.Accepts(ctx, word, budget)
	}

	key, err := VerdictKey(a.Variant(), a.Strategy(), desc, word)
	if err != nil {
		return core.Verdict{}, err
	}
	if accepted, err := e.cache.Load(ctx, key); err == nil {
		return core.Verdict{Accepted: accepted, Consumed: len(word)}, nil
	} else if !errors.Is(err, domain.ErrVerdictNotFound) {
		e.logger.Warn("verdict cache load failed", "key", key, "error", err)
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, key, e.lockTTL)
		if err != nil {
			return core.Verdict{}, fmt.Errorf("failed to lock verdict %s: %w", key, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("verdict unlock failed", "key", key, "error", err)
			}
		}()
		// Another holder may have filled the key while we waited.
		if accepted, err := e.cache.Load(ctx, key); err == nil {
			return core.Verdict{Accepted: accepted, Consumed: len(word)}, nil
		}
	}

	verdict, err := a.Accepts(ctx, word, budget)
	if err != nil {
		return verdict, err
	}
	if err := e.cache.Save(ctx, key, verdict.Accepted); err != nil {
		e.logger.Warn("verdict cache save failed", "key", key, "error", err)
	}
	return verdict, nil
}

// IsEmpty reports whether the automaton's language is empty. Only NFA and
// SAFA support the check; other variants fail with an
// *domain.UnsupportedOperationError.
func (e *Engine) IsEmpty(ctx context.Context, variant domain.Variant, desc *domain.Description) (bool, error) {
	start := time.Now()
	ev := &domain.EmptinessEvent{EventBase: domain.EventBase{
		Type:    domain.EventEmptiness,
		RunID:   uuid.NewString(),
		Variant: variant,
	}}
	logger := e.logger.With("run_id", ev.RunID, "variant", variant)

	empty, visited, err := e.isEmpty(ctx, variant, desc)

	ev.Timestamp = time.Now()
	ev.Empty = empty
	ev.Visited = visited
	ev.Duration = time.Since(start)
	ev.Err = err
	if e.hooks.OnEmptinessChecked != nil {
		e.hooks.OnEmptinessChecked(ctx, ev)
	}

	if err != nil {
		logger.Warn("emptiness check failed", "error", err, "kind", domain.KindOf(err))
		return false, err
	}
	logger.Info("emptiness checked", "empty", empty, "visited", visited, "duration", ev.Duration)
	return empty, nil
}

func (e *Engine) isEmpty(ctx context.Context, variant domain.Variant, desc *domain.Description) (bool, int, error) {
	v, err := domain.ParseVariant(string(variant))
	if err != nil {
		return false, 0, err
	}
	if !v.SupportsEmptiness() {
		return false, 0, &domain.UnsupportedOperationError{Operation: "emptiness check", Variant: v}
	}
	automaton, err := core.Compile(v, desc, e.compileOpts...)
	if err != nil {
		return false, 0, err
	}
	r, err := automaton.Emptiness(ctx)
	if err != nil {
		return false, r.Visited, err
	}
	return !r.Found, r.Visited, nil
}

func (e *Engine) emitStart(ctx context.Context, base domain.EventBase, cases int) {
	e.logger.Debug("evaluation started", "run_id", base.RunID, "variant", base.Variant, "cases", cases)
	if e.hooks.OnEvaluationStart == nil {
		return
	}
	ev := &domain.EvaluationEvent{EventBase: base, Cases: cases}
	ev.Type = domain.EventEvaluationStart
	e.hooks.OnEvaluationStart(ctx, ev)
}
