package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "automata version")
}

func TestEvalCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "ra.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"automata_type": "RA",
		"config": {
			"Q": ["q0", "q1"], "E": ["set"], "q0": "q0", "F": ["q1"],
			"T": [["q0", "set", "-", ["q1"]]],
			"R0": {"R": null}, "U": []
		},
		"test_cases": ["(set,1)", "(set,1),(set,2)"]
	}`), 0o644))

	out, err := execute(t, "eval", "--no-cache", path)
	require.NoError(t, err)
	assert.Equal(t, "[(set, 1)]\taccepted\n[(set, 1) (set, 2)]\trejected\n", out)

	_, err = execute(t, "eval", "--log-level", "chatty", path)
	assert.Error(t, err)
}
