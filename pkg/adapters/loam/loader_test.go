package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
)

const nfaSuite = `automata_type: NFA
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
expect: [true, false]
expect_empty: false
`

const raSuite = `{
  "automata_type": "RA",
  "config": {
    "Q": ["q0", "q1"],
    "E": ["set"],
    "T": [["q0", "set", "-", ["q1"]]],
    "q0": "q0",
    "F": ["q1"],
    "R0": {"R": null},
    "U": [["q0", "set", "R"]]
  },
  "test_cases": ["(set,1)", "(set,1),(set,2)"]
}`

const cmaSuite = `---
automata_type: CMA
config:
  Q: [q0, q1]
  E: [req, ack]
  T:
    - [q0, req, "-", [q1]]
    - [q1, ack, q1, [q0]]
  q0: q0
  Fl: [q0]
  Fg: [q0]
test_cases:
  - "(req,1),(ack,1)"
---
Every request is acknowledged with its own value.`

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, files)
	return New(loam.NewTypedRepository[SuiteMetadata](repo))
}

func TestLoader_ListSuites_NormalizesIDs(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"nfa.yaml":       nfaSuite,
		"registers.json": raSuite,
		"memory.md":      cmaSuite,
	})

	ids, err := loader.ListSuites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"memory", "nfa", "registers"}, ids)
}

func TestLoader_ListSuites_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"nfa.yaml": nfaSuite,
		"nfa.json": raSuite,
	})

	_, err := loader.ListSuites(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "nfa")
}

func TestLoader_GetSuite(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"nfa.yaml":       nfaSuite,
		"registers.json": raSuite,
		"memory.md":      cmaSuite,
	})
	ctx := context.Background()

	t.Run("YAML", func(t *testing.T) {
		suite, err := loader.GetSuite(ctx, "nfa")
		require.NoError(t, err)
		assert.Equal(t, "nfa", suite.ID)
		assert.Equal(t, domain.VariantNFA, suite.Variant)
		assert.Equal(t, []domain.Word{domain.Symbols("a"), domain.Symbols("b")}, suite.Words)
		assert.Equal(t, []bool{true, false}, suite.Expect)
		require.NotNil(t, suite.ExpectEmpty)
		assert.False(t, *suite.ExpectEmpty)
	})

	t.Run("JSON", func(t *testing.T) {
		suite, err := loader.GetSuite(ctx, "registers")
		require.NoError(t, err)
		assert.Equal(t, domain.VariantRA, suite.Variant)
		require.Len(t, suite.Words, 2)
		assert.Equal(t, domain.Word{domain.Datum("set", 1), domain.Datum("set", 2)}, suite.Words[1])
		assert.Nil(t, suite.Expect)
	})

	t.Run("Markdown body is the language", func(t *testing.T) {
		suite, err := loader.GetSuite(ctx, "memory")
		require.NoError(t, err)
		assert.Equal(t, domain.VariantCMA, suite.Variant)
		assert.Equal(t, "Every request is acknowledged with its own value.", suite.Language)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := loader.GetSuite(ctx, "nope")
		assert.Error(t, err)
	})
}

func TestLoader_GetSuite_InvalidConfig(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"broken.yaml": "automata_type: NFA\nconfig:\n  Q: [q0]\n",
	})

	_, err := loader.GetSuite(context.Background(), "broken")
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	loader := newLoader(t, nil)
	ctx := context.Background()

	expectEmpty := true
	err := loader.Save(ctx, "empty.md", SuiteMetadata{
		AutomataType: "NFA",
		Config: map[string]any{
			"Q":  []any{"q0"},
			"E":  []any{"a"},
			"T":  []any{},
			"q0": []any{"q0"},
			"F":  []any{},
		},
		ExpectEmpty: &expectEmpty,
		Language:    "Nothing at all.",
	})
	require.NoError(t, err)

	suite, err := loader.GetSuite(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, "Nothing at all.", suite.Language)
	require.NotNil(t, suite.ExpectEmpty)
	assert.True(t, *suite.ExpectEmpty)
}
