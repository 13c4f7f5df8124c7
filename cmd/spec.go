package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/envreg/internal/presentation"
)

func newSpecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spec <id>",
		Short: "Show the registered spec for an identifier",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			view, err := a.svc.Spec(args[0])
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).JSON(presentation.FromSpecView(view))
		}),
	}
}
