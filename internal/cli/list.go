package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all listings",
		Long:  "List every listing in the store.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := newRepository(cmd.Context())
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	listings, err := repo.List(cmd.Context())
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), listings)
	}

	return printListingTable(cmd.OutOrStdout(), listings)
}
