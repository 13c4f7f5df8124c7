package fakes

import (
	"slices"

	"github.com/zjrosen/envreg/internal/domain/registry"
)

// ModulePath is the catalog module under which the fakes are registered.
const ModulePath = "github.com/zjrosen/envreg/internal/envs/fakes"

// Catalog type names.
const (
	TypeFakeEnvironment           = "FakeEnvironment"
	TypeFakeMultiAgentEnvironment = "FakeMultiAgentEnvironment"
)

// FakeEnvironment is a single-agent environment with configurable specs.
type FakeEnvironment struct {
	opts Options
}

// NewFakeEnvironment builds a FakeEnvironment from kwargs over DefaultOptions.
func NewFakeEnvironment(kwargs registry.Kwargs) (*FakeEnvironment, error) {
	opts := DefaultOptions()
	if err := decodeKwargs(kwargs, &opts); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &FakeEnvironment{opts: opts}, nil
}

// ObservationSpec returns the float observation spec.
func (e *FakeEnvironment) ObservationSpec() ArraySpec {
	return ArraySpec{
		Name:  "observation",
		Shape: slices.Clone(e.opts.ObservationShape),
		DType: "float32",
	}
}

// ActionSpec returns the discrete action spec.
func (e *FakeEnvironment) ActionSpec() DiscreteSpec {
	return DiscreteSpec{
		Name:      "action",
		NumValues: e.opts.NumActionValues,
		Shape:     slices.Clone(e.opts.ActionShape),
	}
}

// TimeLimit returns the episode length.
func (e *FakeEnvironment) TimeLimit() int {
	return e.opts.TimeLimit
}

// Describe summarises the environment for CLI output.
func (e *FakeEnvironment) Describe() map[string]any {
	return map[string]any{
		"observation_spec": e.ObservationSpec(),
		"action_spec":      e.ActionSpec(),
		"time_limit":       e.opts.TimeLimit,
	}
}

// FakeMultiAgentEnvironment is FakeEnvironment with a leading agent axis on
// observations and actions.
type FakeMultiAgentEnvironment struct {
	opts MultiAgentOptions
}

// NewFakeMultiAgentEnvironment builds a FakeMultiAgentEnvironment from kwargs
// over DefaultMultiAgentOptions.
func NewFakeMultiAgentEnvironment(kwargs registry.Kwargs) (*FakeMultiAgentEnvironment, error) {
	opts := DefaultMultiAgentOptions()
	if err := decodeKwargs(kwargs, &opts); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &FakeMultiAgentEnvironment{opts: opts}, nil
}

// NumAgents returns the number of agents.
func (e *FakeMultiAgentEnvironment) NumAgents() int {
	return e.opts.NumAgents
}

// ObservationSpec returns the per-agent observation spec, shape (num_agents, observation_shape...).
func (e *FakeMultiAgentEnvironment) ObservationSpec() ArraySpec {
	return ArraySpec{
		Name:  "observation",
		Shape: append([]int{e.opts.NumAgents}, e.opts.ObservationShape...),
		DType: "float32",
	}
}

// ActionSpec returns the per-agent action spec, shape (num_agents, action_shape...).
func (e *FakeMultiAgentEnvironment) ActionSpec() DiscreteSpec {
	return DiscreteSpec{
		Name:      "action",
		NumValues: e.opts.NumActionValues,
		Shape:     append([]int{e.opts.NumAgents}, e.opts.ActionShape...),
	}
}

// TimeLimit returns the episode length.
func (e *FakeMultiAgentEnvironment) TimeLimit() int {
	return e.opts.TimeLimit
}

// Describe summarises the environment for CLI output.
func (e *FakeMultiAgentEnvironment) Describe() map[string]any {
	return map[string]any{
		"observation_spec": e.ObservationSpec(),
		"action_spec":      e.ActionSpec(),
		"time_limit":       e.opts.TimeLimit,
		"num_agents":       e.opts.NumAgents,
	}
}

// Register adds both fakes to catalog under ModulePath.
func Register(catalog *registry.Catalog) error {
	if err := catalog.Register(ModulePath, TypeFakeEnvironment, func(kwargs registry.Kwargs) (any, error) {
		env, err := NewFakeEnvironment(kwargs)
		if err != nil {
			return nil, err
		}
		return env, nil
	}); err != nil {
		return err
	}
	return catalog.Register(ModulePath, TypeFakeMultiAgentEnvironment, func(kwargs registry.Kwargs) (any, error) {
		env, err := NewFakeMultiAgentEnvironment(kwargs)
		if err != nil {
			return nil, err
		}
		return env, nil
	})
}

// EntryPoint returns the catalog reference for typeName.
func EntryPoint(typeName string) string {
	return registry.BuildEntryPoint(ModulePath, typeName)
}
