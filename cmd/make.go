package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/envreg/internal/domain/registry"
	"github.com/zjrosen/envreg/internal/presentation"
)

func newMakeCmd(a *app) *cobra.Command {
	var pairs []string

	cmd := &cobra.Command{
		Use:   "make <id>",
		Short: "Build a registered environment",
		Long: `Build the environment registered under <id> and print a summary.

Each --kwarg overrides a registered default. Values are parsed as YAML,
so numbers, booleans and lists keep their types.

Examples:
  envreg make Fake-v0
  envreg make Fake-v0 --kwarg time_limit=20 --kwarg observation_shape=[11,17]`,
		Args: cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			kwargs, err := parseKwargs(pairs)
			if err != nil {
				return err
			}

			inst, err := a.svc.Make(cmd.Context(), args[0], kwargs)
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).JSON(presentation.FromInstance(inst))
		}),
	}

	cmd.Flags().StringArrayVarP(&pairs, "kwarg", "k", nil, "constructor argument as key=value (repeatable)")
	return cmd
}

// parseKwargs turns key=value pairs into Kwargs. A later pair overrides
// an earlier one with the same key.
func parseKwargs(pairs []string) (registry.Kwargs, error) {
	kwargs := make(registry.Kwargs, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --kwarg %q: expected key=value", pair)
		}
		kwargs[key] = parseValue(raw)
	}
	return kwargs, nil
}

// parseValue decodes raw as a YAML scalar or flow collection, falling
// back to the raw string.
func parseValue(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	return v
}
