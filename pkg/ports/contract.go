package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
)

// RunVerdictCacheContract runs a suite of tests to verify that a VerdictCache
// implementation adheres to the defined interface contract.
func RunVerdictCacheContract(t *testing.T, cache VerdictCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key+"-yes", true))
		require.NoError(t, cache.Save(ctx, key+"-no", false))

		accepted, err := cache.Load(ctx, key+"-yes")
		require.NoError(t, err)
		assert.True(t, accepted)

		accepted, err = cache.Load(ctx, key+"-no")
		require.NoError(t, err, "a rejection is a cached verdict too")
		assert.False(t, accepted)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key+"-flip", false))
		require.NoError(t, cache.Save(ctx, key+"-flip", true))

		accepted, err := cache.Load(ctx, key+"-flip")
		require.NoError(t, err)
		assert.True(t, accepted)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := cache.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key, true))
		require.NoError(t, cache.Delete(ctx, key))

		_, err := cache.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound, "Load after Delete should return ErrVerdictNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-list-1"
		id2 := key + "-list-2"
		_ = cache.Save(ctx, id1, true)
		_ = cache.Save(ctx, id2, false)

		defer func() {
			_ = cache.Delete(ctx, id1)
			_ = cache.Delete(ctx, id2)
		}()

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
