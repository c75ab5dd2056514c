package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

var _ ports.VerdictCache = (*file.Cache)(nil)

func TestFileCache_Contract(t *testing.T) {
	ports.RunVerdictCacheContract(t, file.New(t.TempDir()))
}

func TestFileCache_MissingDirectory(t *testing.T) {
	cache := file.New(filepath.Join(t.TempDir(), "not", "yet"))
	ctx := context.Background()

	keys, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = cache.Load(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrVerdictNotFound)

	require.NoError(t, cache.Save(ctx, "abc", true))
	accepted, err := cache.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestFileCache_RejectsPathKeys(t *testing.T) {
	cache := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, cache.Save(ctx, "../escape", true))
	assert.Error(t, cache.Save(ctx, "", true))
	_, err := cache.Load(ctx, "a/b")
	assert.Error(t, err)
}

func TestFileCache_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrVerdictNotFound)
}

func TestFileCache_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".automata", "verdicts"), file.New("").BasePath)
}
