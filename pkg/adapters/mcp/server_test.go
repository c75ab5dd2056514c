package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
)

func cmaArgs() map[string]any {
	return map[string]any{
		"automata_type": "CMA",
		"config": map[string]any{
			"Q":  []any{"q0", "q1"},
			"E":  []any{"req", "ack"},
			"q0": "q0",
			"Fl": []any{"q0"},
			"Fg": []any{"q0"},
			"T": []any{
				[]any{"q0", "req", "-", []any{"q1"}},
				[]any{"q1", "ack", "q1", []any{"q0"}},
			},
		},
		"test_cases": []any{
			[]any{[]any{"req", 1.0}, []any{"ack", 1.0}},
			[]any{[]any{"req", 1.0}, []any{"ack", 2.0}},
		},
	}
}

func TestHandleEvaluate(t *testing.T) {
	s := NewServer(automata.New())

	resp, err := s.handleEvaluate(context.Background(), mcp.CallToolRequest{}, cmaArgs())
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Error)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Accepted)
	assert.False(t, resp.Results[1].Accepted)
}

func TestHandleEvaluate_Failures(t *testing.T) {
	s := NewServer(automata.New())

	args := cmaArgs()
	args["automata_type"] = "PDA"
	resp, err := s.handleEvaluate(context.Background(), mcp.CallToolRequest{}, args)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.KindUnknownVariant, resp.Kind)

	_, err = s.handleEvaluate(context.Background(), mcp.CallToolRequest{}, map[string]any{"config": map[string]any{}})
	assert.Error(t, err, "automata_type is required")
}

func TestHandleEvaluate_Budget(t *testing.T) {
	args := cmaArgs()
	args["budget"] = 1.0
	s := NewServer(automata.New())

	resp, err := s.handleEvaluate(context.Background(), mcp.CallToolRequest{}, args)
	require.NoError(t, err)
	assert.Equal(t, domain.KindBudgetExceeded, resp.Kind)
}

func TestHandleEmptiness(t *testing.T) {
	s := NewServer(automata.New())

	resp, err := s.handleEmptiness(context.Background(), mcp.CallToolRequest{}, cmaArgs())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.KindUnsupportedOperation, resp.Kind)

	resp, err = s.handleEmptiness(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"automata_type": "NFA",
		"config": map[string]any{
			"Q":  []any{"q0", "q1"},
			"E":  []any{"a"},
			"q0": []any{"q0"},
			"F":  []any{"q1"},
			"T":  []any{},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.True(t, *resp.Results)
}

func TestToolsAreListed(t *testing.T) {
	s := NewServer(automata.New())
	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`))

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "evaluate_automaton")
	assert.Contains(t, string(data), "check_emptiness")
}

func TestVariants(t *testing.T) {
	infos := Variants()
	require.Len(t, infos, 5)
	assert.Equal(t, VariantInfo{Type: "NFA", Emptiness: true, MultipleInitial: true}, infos[0])
	assert.Equal(t, VariantInfo{Type: "CMA", DataWords: true}, infos[4])
}
