package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show listing details",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	repo, err := newRepository(cmd.Context())
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	l, err := repo.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), l)
	}

	printListingSummary(cmd.OutOrStdout(), l)
	return nil
}
