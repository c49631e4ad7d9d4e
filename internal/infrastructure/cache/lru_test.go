package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/renalplate/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() *domain.FoodNutrients {
	size := 118.0
	return &domain.FoodNutrients{
		Entries: []domain.RawNutrientEntry{
			{ID: 1092, Name: "Potassium, K", Unit: "mg", Value: 358},
		},
		ServingSize: &size,
		ServingUnit: "g",
	}
}

func TestLRUCache_SetAndGet(t *testing.T) {
	cache := NewLRUCache(10, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "nutrients:usda:173944", samplePayload()))

	got, err := cache.Get(ctx, "nutrients:usda:173944")
	require.NoError(t, err)
	assert.Equal(t, samplePayload(), got)
}

func TestLRUCache_Get_CacheMiss(t *testing.T) {
	cache := NewLRUCache(10, time.Minute)

	_, err := cache.Get(context.Background(), "non-existent-key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestLRUCache_StoresCopies(t *testing.T) {
	cache := NewLRUCache(10, time.Minute)
	ctx := context.Background()

	original := samplePayload()
	require.NoError(t, cache.Set(ctx, "k", original))
	original.Entries[0].Value = 0
	*original.ServingSize = 1

	first, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	first.Entries[0].Value = -1

	second, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 358.0, second.Entries[0].Value)
	assert.Equal(t, 118.0, *second.ServingSize)
}

func TestLRUCache_SetNilIsNoop(t *testing.T) {
	cache := NewLRUCache(10, time.Minute)

	require.NoError(t, cache.Set(context.Background(), "k", nil))
	assert.Equal(t, 0, cache.Size())
}

func TestLRUCache_Delete(t *testing.T) {
	cache := NewLRUCache(10, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "delete-test", samplePayload()))
	require.NoError(t, cache.Delete(ctx, "delete-test"))

	_, err := cache.Get(ctx, "delete-test")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestLRUCache_Expiry(t *testing.T) {
	cache := NewLRUCache(10, 5*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short-ttl", samplePayload()))
	exists, err := cache.Exists(ctx, "short-ttl")
	require.NoError(t, err)
	assert.True(t, exists)

	time.Sleep(30 * time.Millisecond)

	exists, err = cache.Exists(ctx, "short-ttl")
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = cache.Get(ctx, "short-ttl")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewLRUCache(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key-%d", i), samplePayload()))
	}
	// Touch key-0 so key-1 becomes the oldest
	_, err := cache.Get(ctx, "key-0")
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "key-3", samplePayload()))

	assert.Equal(t, 3, cache.Size())
	_, err = cache.Get(ctx, "key-1")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	_, err = cache.Get(ctx, "key-0")
	assert.NoError(t, err)
}

func TestLRUCache_Clear(t *testing.T) {
	cache := NewLRUCache(0, 0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", samplePayload()))
	require.NoError(t, cache.Set(ctx, "b", samplePayload()))
	assert.Equal(t, 2, cache.Size())

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}
