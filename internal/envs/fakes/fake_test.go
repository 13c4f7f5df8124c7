package fakes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/envreg/internal/domain/registry"
)

func TestNewFakeEnvironment_Defaults(t *testing.T) {
	env, err := NewFakeEnvironment(nil)
	require.NoError(t, err)

	require.Equal(t, 10, env.TimeLimit())
	require.Equal(t, ArraySpec{Name: "observation", Shape: []int{}, DType: "float32"}, env.ObservationSpec())
	require.Equal(t, DiscreteSpec{Name: "action", NumValues: 1, Shape: []int{}}, env.ActionSpec())
}

func TestNewFakeEnvironment_Kwargs(t *testing.T) {
	tests := []struct {
		name      string
		kwargs    registry.Kwargs
		wantShape []int
	}{
		{
			name:      "int slice",
			kwargs:    registry.Kwargs{"observation_shape": []int{11, 17}},
			wantShape: []int{11, 17},
		},
		{
			name:      "yaml style list",
			kwargs:    registry.Kwargs{"observation_shape": []any{11, 17}},
			wantShape: []int{11, 17},
		},
		{
			name:      "weakly typed strings",
			kwargs:    registry.Kwargs{"observation_shape": []string{"3", "4"}},
			wantShape: []int{3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := NewFakeEnvironment(tt.kwargs)
			require.NoError(t, err)
			require.Equal(t, tt.wantShape, env.ObservationSpec().Shape)
		})
	}
}

func TestNewFakeEnvironment_AllOptions(t *testing.T) {
	env, err := NewFakeEnvironment(registry.Kwargs{
		"time_limit":        25,
		"num_action_values": 4,
		"action_shape":      []int{2},
	})
	require.NoError(t, err)

	require.Equal(t, 25, env.TimeLimit())
	require.Equal(t, DiscreteSpec{Name: "action", NumValues: 4, Shape: []int{2}}, env.ActionSpec())
}

func TestNewFakeEnvironment_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		kwargs  registry.Kwargs
		wantErr error
	}{
		{name: "negative time limit", kwargs: registry.Kwargs{"time_limit": -1}, wantErr: ErrInvalidTimeLimit},
		{name: "negative dimension", kwargs: registry.Kwargs{"observation_shape": []int{3, -1}}, wantErr: ErrInvalidShape},
		{name: "zero action values", kwargs: registry.Kwargs{"num_action_values": 0}, wantErr: ErrInvalidActionValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := NewFakeEnvironment(tt.kwargs)
			require.Nil(t, env)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewFakeEnvironment_UnknownKwarg(t *testing.T) {
	_, err := NewFakeEnvironment(registry.Kwargs{"obs_shape": []int{1}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "obs_shape")
}

func TestFakeEnvironment_SpecsAreCopies(t *testing.T) {
	env, err := NewFakeEnvironment(registry.Kwargs{"observation_shape": []int{2, 2}})
	require.NoError(t, err)

	spec := env.ObservationSpec()
	spec.Shape[0] = 99
	require.Equal(t, []int{2, 2}, env.ObservationSpec().Shape)
}

func TestNewFakeMultiAgentEnvironment(t *testing.T) {
	env, err := NewFakeMultiAgentEnvironment(registry.Kwargs{
		"num_agents":        3,
		"observation_shape": []int{6},
	})
	require.NoError(t, err)

	require.Equal(t, 3, env.NumAgents())
	require.Equal(t, []int{3, 6}, env.ObservationSpec().Shape)
	require.Equal(t, []int{3}, env.ActionSpec().Shape)
	require.Equal(t, 10, env.TimeLimit())
}

func TestNewFakeMultiAgentEnvironment_Defaults(t *testing.T) {
	env, err := NewFakeMultiAgentEnvironment(nil)
	require.NoError(t, err)
	require.Equal(t, 5, env.NumAgents())
	require.Equal(t, []int{5}, env.ObservationSpec().Shape)
}

func TestNewFakeMultiAgentEnvironment_Invalid(t *testing.T) {
	_, err := NewFakeMultiAgentEnvironment(registry.Kwargs{"num_agents": 0})
	require.ErrorIs(t, err, ErrInvalidNumAgents)

	_, err = NewFakeMultiAgentEnvironment(registry.Kwargs{"time_limit": -3})
	require.ErrorIs(t, err, ErrInvalidTimeLimit)
}

func TestDescribe(t *testing.T) {
	env, _ := NewFakeEnvironment(nil)
	desc := env.Describe()
	require.Contains(t, desc, "observation_spec")
	require.Contains(t, desc, "action_spec")
	require.Equal(t, 10, desc["time_limit"])

	multi, _ := NewFakeMultiAgentEnvironment(nil)
	require.Equal(t, 5, multi.Describe()["num_agents"])
}

func TestRegister_ThroughRegistry(t *testing.T) {
	catalog := registry.NewCatalog()
	require.NoError(t, Register(catalog))
	require.Equal(t, []string{TypeFakeEnvironment, TypeFakeMultiAgentEnvironment}, catalog.Types(ModulePath))

	reg := registry.NewRegistry(catalog)
	require.NoError(t, reg.Register("Fake-v0", EntryPoint(TypeFakeEnvironment), nil))

	env, err := reg.Make("Fake-v0", nil)
	require.NoError(t, err)
	require.IsType(t, &FakeEnvironment{}, env)

	obsShape := []int{11, 17}
	env, err = reg.Make("Fake-v0", registry.Kwargs{"observation_shape": obsShape})
	require.NoError(t, err)
	require.Equal(t, obsShape, env.(*FakeEnvironment).ObservationSpec().Shape)
}

func TestRegister_ConstructionErrorIsNotTypedNil(t *testing.T) {
	catalog := registry.NewCatalog()
	require.NoError(t, Register(catalog))
	reg := registry.NewRegistry(catalog)
	require.NoError(t, reg.Register("Fake-v0", EntryPoint(TypeFakeEnvironment), nil))

	env, err := reg.Make("Fake-v0", registry.Kwargs{"time_limit": -1})
	require.ErrorIs(t, err, ErrInvalidTimeLimit)
	require.True(t, env == nil, "constructor failure must return an untyped nil")
}

func TestRegister_Twice(t *testing.T) {
	catalog := registry.NewCatalog()
	require.NoError(t, Register(catalog))
	require.ErrorIs(t, Register(catalog), registry.ErrDuplicateType)
}
