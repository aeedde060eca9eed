package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/evcraddock/hustlebust/internal/listing"
)

// listingFlags holds the field flags shared by add and edit.
type listingFlags struct {
	title       string
	description string
	image       string
	price       string
	location    string
	country     string
}

func (lf *listingFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&lf.title, "title", "", "listing title")
	fs.StringVar(&lf.description, "description", "", "listing description")
	fs.StringVar(&lf.image, "image", "", "image URL")
	fs.StringVar(&lf.price, "price", "", "nightly price (blank clears it on edit)")
	fs.StringVar(&lf.location, "location", "", "location")
	fs.StringVar(&lf.country, "country", "", "country")
}

// fields converts the flags that were set on the command line into a
// listing field set. Unset flags are left out.
func (lf *listingFlags) fields(fs *pflag.FlagSet) (listing.Fields, error) {
	var f listing.Fields

	str := func(name, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}

	f.Title = str("title", lf.title)
	f.Description = str("description", lf.description)
	f.Image = str("image", lf.image)
	f.Location = str("location", lf.location)
	f.Country = str("country", lf.country)

	if fs.Changed("price") {
		if lf.price == "" {
			f.ClearPrice = true
		} else {
			p, err := listing.ParsePrice(lf.price)
			if err != nil {
				return listing.Fields{}, err
			}
			f.Price = &p
		}
	}

	return f.Normalize(), nil
}

func newAddCmd() *cobra.Command {
	var lf listingFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a listing",
		Long:  "Create a new listing from the given flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, &lf)
		},
	}

	lf.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runAdd(cmd *cobra.Command, lf *listingFlags) error {
	f, err := lf.fields(cmd.Flags())
	if err != nil {
		return err
	}

	repo, err := newRepository(cmd.Context())
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	l, err := repo.Create(cmd.Context(), f)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), l)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listing %s added.\n", l.ID)
	printListingSummary(cmd.OutOrStdout(), l)
	return nil
}
