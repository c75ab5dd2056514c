package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
)

const nfaYAML = `automata_type: NFA
config:
  Q: [q0, q1]
  E: [a, b]
  T:
    - [q0, a, [q1]]
  q0: [q0]
  F: [q1]
test_cases:
  - [a]
  - [b]
`

func request(t *testing.T, content string) *codec.Request {
	t.Helper()
	path := filepath.Join(t.TempDir(), "automaton.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	req, err := ReadRequest(path)
	require.NoError(t, err)
	return req
}

func engine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	eng, err := NewEngine(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func TestEval(t *testing.T) {
	eng := engine(t, config.Default())
	req := request(t, nfaYAML)

	out := &bytes.Buffer{}
	require.NoError(t, Eval(context.Background(), eng, req, EvalOptions{}, out))
	assert.Equal(t, "[a]\taccepted\n[b]\trejected\n", out.String())

	out.Reset()
	require.NoError(t, Eval(context.Background(), eng, req, EvalOptions{JSON: true}, out))
	assert.JSONEq(t, `{"success": true, "results": [
		{"input": ["a"], "accepted": true},
		{"input": ["b"], "accepted": false}
	]}`, out.String())
}

func TestEval_FailureStillPrintsEnvelope(t *testing.T) {
	eng := engine(t, config.Default())
	req := request(t, strings.Replace(nfaYAML, "automata_type: NFA", "automata_type: PDA", 1))

	out := &bytes.Buffer{}
	err := Eval(context.Background(), eng, req, EvalOptions{JSON: true}, out)
	require.Error(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, string(domain.KindUnknownVariant), resp["kind"])
}

func TestEmptyAndGraph(t *testing.T) {
	eng := engine(t, config.Default())
	req := request(t, nfaYAML)

	out := &bytes.Buffer{}
	require.NoError(t, Empty(context.Background(), eng, req, false, out))
	assert.Contains(t, out.String(), "non-empty")

	out.Reset()
	require.NoError(t, Empty(context.Background(), eng, req, true, out))
	assert.JSONEq(t, `{"success": true, "results": false}`, out.String())

	out.Reset()
	require.NoError(t, Graph(req, out))
	assert.Contains(t, out.String(), `q0 -- "a" --> q1`)
}

func TestEmpty_JSONEnvelopes(t *testing.T) {
	eng := engine(t, config.Default())

	out := &bytes.Buffer{}
	noFinal := request(t, nfaYAML)
	noFinal.Config["F"] = []any{}
	require.NoError(t, Empty(context.Background(), eng, noFinal, true, out))
	assert.JSONEq(t, `{"success": true, "results": true}`, out.String())

	out.Reset()
	pda := request(t, strings.Replace(nfaYAML, "automata_type: NFA", "automata_type: PDA", 1))
	err := Empty(context.Background(), eng, pda, true, out)
	require.Error(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "unknown_variant", body["kind"])
}

func TestSuite(t *testing.T) {
	dir := t.TempDir()
	pass := nfaYAML + "expect: [true, false]\n"
	fail := nfaYAML + "expect: [true, true]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pass.yaml"), []byte(pass), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fail.yaml"), []byte(fail), 0o644))

	eng := engine(t, config.Default())
	out := &bytes.Buffer{}
	report, err := Suite(context.Background(), eng, SuiteOptions{Dir: dir}, out)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, out.String(), "FAIL  fail [NFA]")
	assert.Contains(t, out.String(), "PASS  pass [NFA]")

	out.Reset()
	report, err = Suite(context.Background(), eng, SuiteOptions{Dir: dir, Filter: "pa*", JSON: true}, out)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))

	_, err = Suite(context.Background(), eng, SuiteOptions{Dir: dir, Filter: "["}, out)
	assert.Error(t, err)
}

func TestNewEngine_Caches(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Dir = t.TempDir()
		eng := engine(t, cfg)

		out := &bytes.Buffer{}
		require.NoError(t, Eval(context.Background(), eng, request(t, nfaYAML), EvalOptions{}, out))

		entries, err := os.ReadDir(cfg.Cache.Dir)
		require.NoError(t, err)
		assert.NotEmpty(t, entries, "verdicts should be written to the cache directory")
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default()
		cfg.Cache.Redis = mr.Addr()
		eng := engine(t, cfg)

		out := &bytes.Buffer{}
		require.NoError(t, Eval(context.Background(), eng, request(t, nfaYAML), EvalOptions{}, out))
		assert.NotEmpty(t, mr.Keys())
	})

	t.Run("Bad Redis Address", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Redis = "redis://[::1"
		_, err := NewEngine(cfg, logging.NewNop())
		assert.Error(t, err)
	})
}

func TestNewEngine_Metrics(t *testing.T) {
	eng := engine(t, config.Default())
	require.NoError(t, Eval(context.Background(), eng, request(t, nfaYAML), EvalOptions{}, &bytes.Buffer{}))

	families, err := eng.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
