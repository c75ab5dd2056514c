package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
)

func nfaRequest() *codec.Request {
	return &codec.Request{
		AutomataType: "NFA",
		Config: map[string]any{
			"Q":  []any{"q0", "q1"},
			"E":  []any{"a", "b"},
			"T":  []any{[]any{"q0", "a", []any{"q1"}}},
			"q0": []any{"q0"},
			"F":  []any{"q1"},
		},
		TestCases: []any{[]any{"a"}, []any{"b"}},
	}
}

func suite(t *testing.T, id string, req *codec.Request) *domain.Suite {
	t.Helper()
	s, err := req.Suite(id)
	require.NoError(t, err)
	return s
}

func boolPtr(b bool) *bool { return &b }

type recorder struct {
	suites   []string
	finished *Report
}

func (r *recorder) SuiteFinished(_ context.Context, s *SuiteResult) error {
	r.suites = append(r.suites, s.ID)
	return nil
}

func (r *recorder) Finish(_ context.Context, report *Report) error {
	r.finished = report
	return nil
}

func TestRunner_Run(t *testing.T) {
	passing := nfaRequest()
	passing.Expect = []bool{true, false}
	passing.ExpectEmpty = boolPtr(false)

	failing := nfaRequest()
	failing.Expect = []bool{true, true}

	broken := nfaRequest()
	broken.AutomataType = "RA"
	broken.Config["T"] = []any{[]any{"q0", "a", "-", []any{"q1"}}}
	broken.Config["R0"] = map[string]any{"R": nil}
	broken.Config["U"] = []any{}
	broken.TestCases = []any{"(a,1)"}
	broken.ExpectEmpty = boolPtr(true)

	loader, err := memory.NewFromSuites(
		suite(t, "passing", passing),
		suite(t, "failing", failing),
		suite(t, "unsupported", broken),
	)
	require.NoError(t, err)

	rec := &recorder{}
	report, err := NewRunner(automata.New(), loader, WithReporter(rec)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"failing", "passing", "unsupported"}, rec.suites)
	assert.Same(t, report, rec.finished)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Errored)
	assert.False(t, report.OK())

	failed := report.Suites[0]
	require.Len(t, failed.Mismatches(), 1)
	assert.Equal(t, domain.Symbols("b"), failed.Mismatches()[0].Input)

	passed := report.Suites[1]
	require.NotNil(t, passed.Empty)
	assert.False(t, *passed.Empty)

	unsupported := report.Suites[2]
	assert.Equal(t, StatusError, unsupported.Status())
	assert.Equal(t, domain.KindUnsupportedOperation, unsupported.Kind)
}

func TestRunner_FailFastAndFilter(t *testing.T) {
	bad := nfaRequest()
	bad.Expect = []bool{false, false}

	loader, err := memory.NewFromSuites(
		suite(t, "a-bad", bad),
		suite(t, "b-bad", bad),
		suite(t, "c-good", nfaRequest()),
	)
	require.NoError(t, err)

	report, err := NewRunner(automata.New(), loader, WithFailFast(true)).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Suites, 1)

	report, err = NewRunner(automata.New(), loader,
		WithFilter(func(id string) bool { return id == "c-good" }),
	).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Suites, 1)
	assert.True(t, report.OK())
}

func TestRunner_Budget(t *testing.T) {
	req := &codec.Request{
		AutomataType: "RA",
		Config: map[string]any{
			"Q":  []any{"q0", "q1"},
			"E":  []any{"set"},
			"T":  []any{[]any{"q0", "set", "-", []any{"q0", "q1"}}},
			"q0": "q0",
			"F":  []any{"q1"},
			"R0": map[string]any{"R": nil},
			"U":  []any{[]any{"q0", "set", "R"}},
		},
		TestCases: []any{"(set,1),(set,2),(set,3),(set,4),(set,5),(set,6)"},
	}
	loader, err := memory.NewFromSuites(suite(t, "ra", req))
	require.NoError(t, err)

	report, err := NewRunner(automata.New(), loader, WithBudget(3)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.KindBudgetExceeded, report.Suites[0].Kind)
}

type failingLoader struct{}

func (failingLoader) ListSuites(context.Context) ([]string, error) {
	return nil, errors.New("disk on fire")
}

func (failingLoader) GetSuite(context.Context, string) (*domain.Suite, error) {
	return nil, errors.New("unreachable")
}

func TestRunner_LoaderFailure(t *testing.T) {
	_, err := NewRunner(automata.New(), failingLoader{}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestRunner_ContextCanceled(t *testing.T) {
	loader, err := memory.NewFromSuites(suite(t, "nfa", nfaRequest()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewRunner(automata.New(), loader).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
