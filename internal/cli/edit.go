package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var lf listingFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a listing",
		Long:  "Update a listing. Only the flags that are given are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], &lf)
		},
	}

	lf.register(cmd.Flags())

	return cmd
}

func runEdit(cmd *cobra.Command, id string, lf *listingFlags) error {
	f, err := lf.fields(cmd.Flags())
	if err != nil {
		return err
	}
	if f.Empty() {
		return errors.New("nothing to update: pass at least one of --title, --description, --image, --price, --location, --country")
	}

	repo, err := newRepository(cmd.Context())
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	l, err := repo.Update(cmd.Context(), id, f)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), l)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listing %s updated.\n", l.ID)
	printListingSummary(cmd.OutOrStdout(), l)
	return nil
}
