package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 4 << 20

// Server serves the automata API on top of an Evaluator.
type Server struct {
	Engine ports.Evaluator
	Logger *slog.Logger
}

type config struct {
	logger   *slog.Logger
	limiter  *rate.Limiter
	gatherer prometheus.Gatherer
	maxBody  int64
	timeout  time.Duration
}

// Option configures the handler.
type Option func(*config)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRateLimit enables a token bucket of rps requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *config) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithGatherer selects the registry exposed at /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(c *config) { c.gatherer = g }
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) { c.maxBody = n }
}

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Evaluator, opts ...Option) http.Handler {
	cfg := &config{
		logger:   logging.NewNop(),
		gatherer: prometheus.DefaultGatherer,
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	doc, err := GetSwagger()
	if err != nil {
		panic("http: embedded OpenAPI document is invalid: " + err.Error())
	}

	server := &Server{Engine: engine, Logger: cfg.logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	if cfg.limiter != nil {
		r.Use(rateLimit(cfg.limiter))
	}
	if cfg.timeout > 0 {
		r.Use(middleware.Timeout(cfg.timeout))
	}
	r.Use(middleware.RequestSize(cfg.maxBody))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(doc, cfg.logger))
		r.Post("/api/process-automata", server.ProcessAutomata)
		r.Post("/api/check-emptiness", server.CheckEmptiness)
	})
	return r
}

// ProcessAutomata handles POST /api/process-automata.
func (s *Server) ProcessAutomata(w http.ResponseWriter, r *http.Request) {
	log := s.Logger.With("request_id", middleware.GetReqID(r.Context()))

	var budget *int
	if err := runtime.BindQueryParameter("form", true, false, "budget", r.URL.Query(), &budget); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid budget: "+err.Error()))
		return
	}

	req, err := codec.DecodeJSON(r.Body)
	if err != nil {
		log.Warn("ProcessAutomata: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	n := 0
	if budget != nil {
		n = *budget
	}
	ev, err := req.Evaluation(n)
	if err != nil {
		log.Info("ProcessAutomata: rejected automaton", "type", req.AutomataType, "error", err)
		writeJSON(w, http.StatusOK, codec.ProcessFailed(err))
		return
	}

	verdicts, err := s.Engine.Evaluate(r.Context(), ev)
	if err != nil {
		log.Info("ProcessAutomata: evaluation failed", "type", ev.Variant, "kind", domain.KindOf(err), "error", err)
		writeJSON(w, http.StatusOK, codec.ProcessFailed(err))
		return
	}
	log.Debug("ProcessAutomata: decided", "type", ev.Variant, "cases", len(verdicts))
	writeJSON(w, http.StatusOK, codec.Processed(req.TestCases, verdicts))
}

// CheckEmptiness handles POST /api/check-emptiness.
func (s *Server) CheckEmptiness(w http.ResponseWriter, r *http.Request) {
	log := s.Logger.With("request_id", middleware.GetReqID(r.Context()))

	req, err := codec.DecodeJSON(r.Body)
	if err != nil {
		log.Warn("CheckEmptiness: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	v, desc, err := req.Description()
	if err == nil {
		var empty bool
		empty, err = s.Engine.IsEmpty(r.Context(), v, desc)
		if err == nil {
			writeJSON(w, http.StatusOK, codec.Checked(empty))
			return
		}
	}
	log.Info("CheckEmptiness: failed", "type", req.AutomataType, "kind", domain.KindOf(err), "error", err)
	writeJSON(w, http.StatusOK, codec.CheckFailed(err))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	variants := make([]string, 0, len(domain.Variants()))
	for _, v := range domain.Variants() {
		variants = append(variants, v.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
		"variants":    variants,
	})
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorBody(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		slog.Error("response encode failed", "error", err)
	}
}
