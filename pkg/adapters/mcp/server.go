package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// VariantInfo describes what an automaton family offers.
type VariantInfo struct {
	Type            string `json:"type"`
	Emptiness       bool   `json:"emptiness"`
	DataWords       bool   `json:"data_words"`
	MultipleInitial bool   `json:"multiple_initial"`
}

// Server wraps an Evaluator and exposes it as an MCP Server.
type Server struct {
	engine    ports.Evaluator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the logger used for tool failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Evaluator, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down
// when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	evaluateTool := mcp.NewTool("evaluate_automaton",
		mcp.WithDescription("Decide which test cases an automaton (NFA, RA, SAFA, CCA or CMA) accepts."),
		mcp.WithString("automata_type", mcp.Required(), mcp.Description("One of NFA, RA, SAFA, CCA, CMA")),
		mcp.WithObject("config", mcp.Required(), mcp.Description("Automaton definition using the Q, E, T, q0, F, ... keys")),
		mcp.WithArray("test_cases", mcp.Required(), mcp.Description("Words: symbol lists for NFA, [symbol, value] pair lists otherwise")),
		mcp.WithNumber("budget", mcp.Description("Per-word exploration budget; negative disables the cap")),
		mcp.WithOutputSchema[codec.ProcessResponse](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	emptinessTool := mcp.NewTool("check_emptiness",
		mcp.WithDescription("Decide whether an NFA or SAFA accepts no word at all."),
		mcp.WithString("automata_type", mcp.Required(), mcp.Description("NFA or SAFA")),
		mcp.WithObject("config", mcp.Required(), mcp.Description("Automaton definition")),
		mcp.WithOutputSchema[codec.EmptinessResponse](),
	)
	s.mcpServer.AddTool(emptinessTool, mcp.NewStructuredToolHandler(s.handleEmptiness))
}

func (s *Server) handleEvaluate(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (codec.ProcessResponse, error) {
	req, err := codec.FromMap(args)
	if err != nil {
		return codec.ProcessResponse{}, err
	}
	ev, err := req.Evaluation(budgetArg(args))
	if err == nil {
		var verdicts []bool
		verdicts, err = s.engine.Evaluate(ctx, ev)
		if err == nil {
			return codec.Processed(req.TestCases, verdicts), nil
		}
	}
	s.logger.Info("MCP evaluate_automaton failed", "type", req.AutomataType, "kind", domain.KindOf(err), "error", err)
	return codec.ProcessFailed(err), nil
}

func (s *Server) handleEmptiness(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (codec.EmptinessResponse, error) {
	req, err := codec.FromMap(args)
	if err != nil {
		return codec.EmptinessResponse{}, err
	}
	v, desc, err := req.Description()
	if err == nil {
		var empty bool
		empty, err = s.engine.IsEmpty(ctx, v, desc)
		if err == nil {
			return codec.Checked(empty), nil
		}
	}
	s.logger.Info("MCP check_emptiness failed", "type", req.AutomataType, "kind", domain.KindOf(err), "error", err)
	return codec.CheckFailed(err), nil
}

// budgetArg reads the optional budget; JSON numbers arrive as float64.
func budgetArg(args map[string]any) int {
	switch b := domain.NormalizeValue(args["budget"]).(type) {
	case int64:
		return int(b)
	case float64:
		return int(b)
	}
	return 0
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("automata://variants", "Supported automaton families",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(Variants())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://variants",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// Variants lists the capabilities of every supported family.
func Variants() []VariantInfo {
	out := make([]VariantInfo, 0, len(domain.Variants()))
	for _, v := range domain.Variants() {
		out = append(out, VariantInfo{
			Type:            v.String(),
			Emptiness:       v.SupportsEmptiness(),
			DataWords:       v.CarriesData(),
			MultipleInitial: v.MultipleInitial(),
		})
	}
	return out
}
