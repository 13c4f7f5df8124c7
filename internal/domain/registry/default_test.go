package registry

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_ReturnsSameInstance(t *testing.T) {
	restore := SetDefault(nil)
	defer restore()

	first := Default()
	require.NotNil(t, first)
	require.Same(t, first, Default())
}

func TestSetDefault_IsolatesPackageFunctions(t *testing.T) {
	isolated := newTestRegistry(t)
	restore := SetDefault(isolated)

	require.NoError(t, Register("Fake-v0", stubModule+":Stub", Kwargs{"time_limit": 1}))
	require.Equal(t, []string{"Fake-v0"}, RegisteredEnvironments())

	env, err := Make("Fake-v0", nil)
	require.NoError(t, err)
	require.IsType(t, &stubEnv{}, env)

	restore()
	require.NotSame(t, isolated, Default())
	require.NotContains(t, RegisteredEnvironments(), "Fake-v0")
}

func TestDefault_UsesDefaultCatalog(t *testing.T) {
	restore := SetDefault(nil)
	defer restore()

	module := stubModule + "/default"
	// The catalog is process-wide and outlives this test under -count
	if !slices.Contains(DefaultCatalog().Types(module), "Stub") {
		DefaultCatalog().MustRegister(module, "Stub", func(kwargs Kwargs) (any, error) {
			return &stubEnv{kwargs: kwargs}, nil
		})
	}

	require.NoError(t, Register("DefaultStub-v0", module+":Stub", nil))
	env, err := Make("DefaultStub-v0", Kwargs{"observation_shape": []int{2}})
	require.NoError(t, err)
	require.Equal(t, []int{2}, env.(*stubEnv).ObservationShape())
}
