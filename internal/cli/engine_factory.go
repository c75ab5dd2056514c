package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/adapters/file"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
)

// Engine bundles the engine with the resources the commands need to expose
// or release.
type Engine struct {
	*automata.Engine
	Metrics  *observability.Metrics
	Registry *prometheus.Registry

	closers []func() error
}

// Close releases the cache connections.
func (e *Engine) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewEngine initializes an engine with standard CLI conventions: log and
// metric hooks, the configured budget and workers, and a verdict cache
// backed by Redis, a directory, or nothing.
func NewEngine(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	out := &Engine{Metrics: metrics, Registry: reg}
	opts := []automata.Option{
		automata.WithLogger(logger),
		automata.WithLifecycleHooks(observability.Combine(observability.LogHooks(logger), metrics.Hooks())),
	}
	if cfg.Engine.Budget != 0 {
		opts = append(opts, automata.WithExplorationBudget(cfg.Engine.Budget))
	}
	if cfg.Engine.Workers > 0 {
		opts = append(opts, automata.WithWorkers(cfg.Engine.Workers))
	}

	switch {
	case cfg.Cache.Disabled:
	case cfg.Cache.Redis != "":
		opt, err := backend.ParseURL(redisURL(cfg.Cache.Redis))
		if err != nil {
			return nil, fmt.Errorf("invalid redis address %q: %w", cfg.Cache.Redis, err)
		}
		client := backend.NewClient(opt)
		cache := redis.NewFromClient(client, redis.WithPrefix(cfg.Cache.Prefix))
		opts = append(opts,
			automata.WithVerdictCache(cache),
			automata.WithLocker(redis.NewLocker(client, cfg.Cache.Prefix+"lock:"), cfg.Cache.LockTTL),
		)
		out.closers = append(out.closers, cache.Close)
		logger.Debug("verdict cache enabled", "backend", "redis", "addr", opt.Addr)
	case cfg.Cache.Dir != "":
		opts = append(opts,
			automata.WithVerdictCache(file.New(cfg.Cache.Dir)),
			automata.WithLocker(memory.NewLocker(), cfg.Cache.LockTTL),
		)
		logger.Debug("verdict cache enabled", "backend", "file", "dir", cfg.Cache.Dir)
	}

	out.Engine = automata.New(opts...)
	return out, nil
}

// redisURL accepts both "host:port" and full redis:// URLs.
func redisURL(addr string) string {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		return addr
	}
	return "redis://" + addr
}
