package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata/internal/config"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
)

// Serve runs the HTTP API until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, eng *Engine, cfg config.ServerConfig, logger *slog.Logger) error {
	handler := httpAdapter.NewHandler(eng,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithGatherer(eng.Registry),
		httpAdapter.WithRateLimit(cfg.RateLimit, cfg.Burst),
		httpAdapter.WithMaxBodyBytes(cfg.MaxBodyBytes),
		httpAdapter.WithTimeout(cfg.Timeout),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		return nil
	}
}
