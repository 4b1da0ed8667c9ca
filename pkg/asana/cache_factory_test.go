package asana_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskwire-io/asana/pkg/asana"
)

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := asana.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &asana.MemoryCache{}, cache)
	})

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		cache, err := asana.NewCacheFromConfig(&asana.CacheConfig{
			Type:          asana.CacheTypeMemory,
			MemoryMaxSize: 100,
		})
		require.NoError(t, err)
		assert.IsType(t, &asana.MemoryCache{}, cache)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		cache, err := asana.NewCacheFromConfig(&asana.CacheConfig{Type: asana.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &asana.NoOpCache{}, cache)
	})

	t.Run("nats without config", func(t *testing.T) {
		t.Parallel()

		_, err := asana.NewCacheFromConfig(&asana.CacheConfig{Type: asana.CacheTypeNATS})
		require.ErrorIs(t, err, asana.ErrNATSConfigRequired)
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()

		_, err := asana.NewCacheFromConfig(&asana.CacheConfig{Type: asana.CacheType("redis")})
		require.ErrorIs(t, err, asana.ErrUnsupportedCacheType)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := asana.NewNoOpCache()
	ctx := context.Background()

	entry := &asana.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	require.NoError(t, cache.Set(ctx, "key1", entry))

	// Every lookup misses
	_, err := cache.Get(ctx, "key1")
	require.ErrorIs(t, err, asana.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key1"))

	require.NoError(t, cache.Delete(ctx, "key1"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheChain_Get(t *testing.T) {
	t.Parallel()

	front := asana.NewMemoryCache(10)
	back := asana.NewMemoryCache(10)
	chain := asana.NewCacheChain(front, back)
	ctx := context.Background()

	entry := &asana.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	// Only the back layer holds the entry
	require.NoError(t, back.Set(ctx, "key1", entry))
	assert.False(t, front.Has(ctx, "key1"))

	retrieved, err := chain.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)

	// A hit in the back layer populates the front one
	assert.True(t, front.Has(ctx, "key1"))
}

func TestCacheChain_GetMiss(t *testing.T) {
	t.Parallel()

	chain := asana.NewCacheChain(asana.NewMemoryCache(10), asana.NewNoOpCache())
	ctx := context.Background()

	_, err := chain.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, asana.ErrNotInAnyCache)
}

func TestCacheChain_SetAndDelete(t *testing.T) {
	t.Parallel()

	front := asana.NewMemoryCache(10)
	back := asana.NewMemoryCache(10)
	chain := asana.NewCacheChain(front, back)
	ctx := context.Background()

	entry := &asana.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	// Writes land in every layer
	require.NoError(t, chain.Set(ctx, "key1", entry))
	assert.True(t, front.Has(ctx, "key1"))
	assert.True(t, back.Has(ctx, "key1"))
	assert.True(t, chain.Has(ctx, "key1"))

	// Deletes clear every layer
	require.NoError(t, chain.Delete(ctx, "key1"))
	assert.False(t, front.Has(ctx, "key1"))
	assert.False(t, back.Has(ctx, "key1"))
	assert.False(t, chain.Has(ctx, "key1"))
}

func TestCacheChain_Clear(t *testing.T) {
	t.Parallel()

	front := asana.NewMemoryCache(10)
	back := asana.NewMemoryCache(10)
	chain := asana.NewCacheChain(front, back)
	ctx := context.Background()

	entry := &asana.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	require.NoError(t, chain.Set(ctx, "key1", entry))
	require.NoError(t, chain.Set(ctx, "key2", entry))

	require.NoError(t, chain.Clear(ctx))
	assert.False(t, chain.Has(ctx, "key1"))
	assert.False(t, chain.Has(ctx, "key2"))
}
