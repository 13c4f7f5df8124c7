package fakes

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/zjrosen/envreg/internal/domain/registry"
)

// Option errors
var (
	ErrInvalidTimeLimit    = errors.New("time_limit must be non-negative")
	ErrInvalidShape        = errors.New("shape dimensions must be non-negative")
	ErrInvalidActionValues = errors.New("num_action_values must be at least 1")
	ErrInvalidNumAgents    = errors.New("num_agents must be at least 1")
)

// Options are the keyword arguments accepted by FakeEnvironment.
type Options struct {
	TimeLimit        int   `mapstructure:"time_limit"`
	ObservationShape []int `mapstructure:"observation_shape"`
	NumActionValues  int   `mapstructure:"num_action_values"`
	ActionShape      []int `mapstructure:"action_shape"`
}

// DefaultOptions returns the values used for omitted kwargs.
func DefaultOptions() Options {
	return Options{
		TimeLimit:        10,
		ObservationShape: []int{},
		NumActionValues:  1,
		ActionShape:      []int{},
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeLimit, o.TimeLimit)
	}
	if err := validateShape("observation_shape", o.ObservationShape); err != nil {
		return err
	}
	if err := validateShape("action_shape", o.ActionShape); err != nil {
		return err
	}
	if o.NumActionValues < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidActionValues, o.NumActionValues)
	}
	return nil
}

// MultiAgentOptions are the keyword arguments accepted by FakeMultiAgentEnvironment.
type MultiAgentOptions struct {
	Options   `mapstructure:",squash"`
	NumAgents int `mapstructure:"num_agents"`
}

// DefaultMultiAgentOptions returns the values used for omitted kwargs.
func DefaultMultiAgentOptions() MultiAgentOptions {
	return MultiAgentOptions{
		Options:   DefaultOptions(),
		NumAgents: 5,
	}
}

// Validate checks option ranges.
func (o MultiAgentOptions) Validate() error {
	if o.NumAgents < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidNumAgents, o.NumAgents)
	}
	return o.Options.Validate()
}

func validateShape(field string, shape []int) error {
	for _, dim := range shape {
		if dim < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidShape, field, shape)
		}
	}
	return nil
}

// decodeKwargs overlays kwargs onto out. Unknown keys are rejected so typos
// in manifests or --kwarg flags surface at construction time.
func decodeKwargs(kwargs registry.Kwargs, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create kwargs decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(kwargs)); err != nil {
		return fmt.Errorf("decode kwargs: %w", err)
	}
	return nil
}
