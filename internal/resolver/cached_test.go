package resolver

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/envreg/internal/domain/registry"
)

// countingResolver counts calls to an inner catalog.
type countingResolver struct {
	catalog *registry.Catalog
	calls   int
}

func (r *countingResolver) Resolve(ref string) (registry.Constructor, error) {
	r.calls++
	return r.catalog.Resolve(ref)
}

func newCounting(t *testing.T) *countingResolver {
	t.Helper()
	catalog := registry.NewCatalog()
	catalog.MustRegister("envs/test", "Thing", func(kwargs registry.Kwargs) (any, error) {
		return kwargs, nil
	})
	return &countingResolver{catalog: catalog}
}

func TestCached_MemoisesSuccessfulResolution(t *testing.T) {
	inner := newCounting(t)
	cached := NewCached(inner, Options{})

	for i := 0; i < 3; i++ {
		ctor, err := cached.Resolve("envs/test:Thing")
		require.NoError(t, err)
		require.NotNil(t, ctor)
	}
	require.Equal(t, 1, inner.calls)

	env, err := func() (any, error) {
		ctor, _ := cached.Resolve("envs/test:Thing")
		return ctor(registry.Kwargs{"a": 1})
	}()
	require.NoError(t, err)
	require.Equal(t, registry.Kwargs{"a": 1}, env)
}

func TestCached_DoesNotCacheFailures(t *testing.T) {
	inner := newCounting(t)
	cached := NewCached(inner, Options{})

	_, err := cached.Resolve("envs/test:Later")
	require.ErrorIs(t, err, registry.ErrEntryPointResolution)

	// Registering afterwards is picked up on the next call
	inner.catalog.MustRegister("envs/test", "Later", func(registry.Kwargs) (any, error) {
		return "later", nil
	})
	ctor, err := cached.Resolve("envs/test:Later")
	require.NoError(t, err)
	env, err := ctor(nil)
	require.NoError(t, err)
	require.Equal(t, "later", env)
	require.Equal(t, 2, inner.calls)
}

func TestCached_Invalidate(t *testing.T) {
	inner := newCounting(t)
	cached := NewCached(inner, Options{})

	_, err := cached.Resolve("envs/test:Thing")
	require.NoError(t, err)
	cached.Invalidate("envs/test:Thing")
	_, err = cached.Resolve("envs/test:Thing")
	require.NoError(t, err)

	require.Equal(t, 2, inner.calls)
}

func TestCached_Disabled(t *testing.T) {
	inner := newCounting(t)
	cached := NewCached(inner, Options{Disabled: true})

	_, _ = cached.Resolve("envs/test:Thing")
	_, _ = cached.Resolve("envs/test:Thing")
	require.Equal(t, 2, inner.calls)
}

func TestCached_TTLExpiry(t *testing.T) {
	inner := newCounting(t)
	cached := NewCached(inner, Options{TTL: 10 * time.Millisecond, CleanupInterval: time.Hour})

	_, err := cached.Resolve("envs/test:Thing")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, _ = cached.Resolve("envs/test:Thing")
		return inner.calls >= 2
	}, time.Second, 20*time.Millisecond)
}

type brokenResolver struct{}

func (brokenResolver) Resolve(string) (registry.Constructor, error) {
	return nil, errors.New("backend down")
}

func TestCached_WithRegistry_WrapsForeignErrors(t *testing.T) {
	reg := registry.NewRegistry(NewCached(brokenResolver{}, Options{}))
	require.NoError(t, reg.Register("Env-v0", "x:Y", nil))

	_, err := reg.Make("Env-v0", nil)
	require.ErrorIs(t, err, registry.ErrEntryPointResolution)
}

func TestCached_SlidingTTL_KeepsHotEntries(t *testing.T) {
	inner := newCounting(t)
	cached := NewCached(inner, Options{TTL: 150 * time.Millisecond, CleanupInterval: time.Hour, Sliding: true})

	// Reads well inside the TTL keep pushing expiry out, so the entry
	// outlives several TTL windows.
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, err := cached.Resolve("envs/test:Thing")
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}
	require.Equal(t, 1, inner.calls)
}
