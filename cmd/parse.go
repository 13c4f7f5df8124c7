package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/envreg/internal/domain/registry"
	"github.com/zjrosen/envreg/internal/presentation"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <id>",
		Short: "Split an identifier into name and version",
		Long: `Split an identifier of the form {name}-v{version} into its parts.
The identifier does not need to be registered.

Example:
  envreg parse Snake-v1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version, err := registry.ParseIdentifier(args[0])
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).JSON(presentation.ParseDTO{Name: name, Version: version})
		},
	}
}
