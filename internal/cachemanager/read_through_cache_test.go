package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCacheManager is a testify mock of CacheManager.
type mockCacheManager[V any] struct {
	mock.Mock
}

func (m *mockCacheManager[V]) Get(ctx context.Context, key string) (V, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[V]) GetWithRefresh(ctx context.Context, key string, ttl time.Duration) (V, bool) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager[V]) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type wrappedInput struct {
	Id int
}

func exampleLoader(calls *int) func(ctx context.Context, input wrappedInput) (*ExampleStruct, error) {
	return func(ctx context.Context, input wrappedInput) (*ExampleStruct, error) {
		*calls++
		return &ExampleStruct{ID: input.Id}, nil
	}
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager[*ExampleStruct]{}
	calls := 0

	readThroughCache := NewReadThroughCache[string, *ExampleStruct, wrappedInput](managerMock, exampleLoader(&calls), true)

	example, err := readThroughCache.Get(context.Background(), "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, &ExampleStruct{ID: 1}, example)
	require.Equal(t, 1, calls)

	// The cache is never touched when skipping
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_CacheHit(t *testing.T) {
	ctx := context.Background()
	managerMock := &mockCacheManager[*ExampleStruct]{}
	cached := &ExampleStruct{ID: 7}
	managerMock.On("Get", ctx, "key").Return(cached, true).Once()
	calls := 0

	readThroughCache := NewReadThroughCache[string, *ExampleStruct, wrappedInput](managerMock, exampleLoader(&calls), false)

	example, err := readThroughCache.Get(ctx, "key", wrappedInput{Id: 1}, time.Minute)
	require.NoError(t, err)
	require.Same(t, cached, example)
	require.Zero(t, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_CacheMissStoresValue(t *testing.T) {
	ctx := context.Background()
	managerMock := &mockCacheManager[*ExampleStruct]{}
	managerMock.On("Get", ctx, "key").Return((*ExampleStruct)(nil), false).Once()
	managerMock.On("Set", ctx, "key", &ExampleStruct{ID: 2}, time.Minute).Once()
	calls := 0

	readThroughCache := NewReadThroughCache[string, *ExampleStruct, wrappedInput](managerMock, exampleLoader(&calls), false)

	example, err := readThroughCache.Get(ctx, "key", wrappedInput{Id: 2}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, &ExampleStruct{ID: 2}, example)
	require.Equal(t, 1, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	managerMock := &mockCacheManager[*ExampleStruct]{}
	managerMock.On("Get", ctx, "key").Return((*ExampleStruct)(nil), false)
	loadErr := errors.New("load failed")

	readThroughCache := NewReadThroughCache[string, *ExampleStruct, wrappedInput](
		managerMock,
		func(ctx context.Context, input wrappedInput) (*ExampleStruct, error) {
			return nil, loadErr
		},
		false,
	)

	_, err := readThroughCache.Get(ctx, "key", wrappedInput{}, time.Minute)
	require.ErrorIs(t, err, loadErr)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_GetWithRefresh_UsesRealCache(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, *ExampleStruct]("examples", DefaultExpiration, DefaultCleanupInterval)
	calls := 0

	readThroughCache := NewReadThroughCache[string, *ExampleStruct, wrappedInput](cache, exampleLoader(&calls), false)

	first, err := readThroughCache.GetWithRefresh(ctx, "key", wrappedInput{Id: 3}, time.Hour)
	require.NoError(t, err)
	second, err := readThroughCache.GetWithRefresh(ctx, "key", wrappedInput{Id: 3}, time.Hour)
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, calls)

	require.NoError(t, readThroughCache.Invalidate(ctx, "key"))
	_, err = readThroughCache.GetWithRefresh(ctx, "key", wrappedInput{Id: 3}, time.Hour)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
