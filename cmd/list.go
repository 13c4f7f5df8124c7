package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/envreg/internal/envservice"
	"github.com/zjrosen/envreg/internal/presentation"
)

func newListCmd(a *app) *cobra.Command {
	var (
		format string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered environments",
		Long: `List registered environments in registration order.

Examples:
  # All environments as JSON
  envreg list

  # Every version of one environment as a table
  envreg list --name Fake --format table

  # Just the identifiers
  envreg list | jq -r '.[].id'`,
		Args: cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			var views []envservice.SpecView
			if cmd.Flags().Changed("name") {
				views = a.svc.ListByName(name)
			} else {
				views = a.svc.List()
			}

			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			return formatter.FormatSpecs(presentation.FromSpecViews(views), format)
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", presentation.FormatJSON, "output format: json or table")
	cmd.Flags().StringVarP(&name, "name", "n", "", "only list versions of this base name")
	return cmd
}
