package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

type ExampleStruct struct {
	ID   int
	Name string
}

type exampleKey string

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[exampleKey, ExampleStruct]("food-cache", DefaultExpiration, DefaultCleanupInterval)
	example := ExampleStruct{Name: "apple"}
	cache.Set(context.Background(), "ex:1", example, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "ex:1")
	require.True(t, ok)
	require.Equal(t, example, got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("food-cache", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "food")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("food-cache", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("food", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "food")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("food-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "food", "apple", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "food")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("food-cache", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	_, ok := cache.GetWithRefresh(ctx, "food", time.Hour)
	require.False(t, ok)

	cache.Set(ctx, "food", "apple", time.Hour)
	got, ok := cache.GetWithRefresh(ctx, "food", time.Hour)
	require.True(t, ok)
	require.Equal(t, "apple", got)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("numbers", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	cache.Set(ctx, "a", 1, DefaultExpiration)
	cache.Set(ctx, "b", 2, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx, "a", "missing"))
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	got, ok := cache.Get(ctx, "b")
	require.True(t, ok)
	require.Equal(t, 2, got)

	require.NoError(t, cache.Delete(ctx))
	_, ok = cache.Get(ctx, "b")
	require.True(t, ok)
}
