package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/hustlebust/internal/listing"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingSummary prints a single listing in text format.
func printListingSummary(w io.Writer, l *listing.Listing) {
	fmt.Fprintf(w, "Listing %s\n", l.ID)
	fmt.Fprintf(w, "  Title:     %s\n", l.Title)
	if l.Description != "" {
		fmt.Fprintf(w, "  About:     %s\n", l.Description)
	}
	if l.Price != nil {
		fmt.Fprintf(w, "  Price:     %s\n", formatPrice(l.Price))
	}
	if l.Location != "" {
		fmt.Fprintf(w, "  Location:  %s\n", l.Location)
	}
	if l.Country != "" {
		fmt.Fprintf(w, "  Country:   %s\n", l.Country)
	}
	if l.Image != "" {
		fmt.Fprintf(w, "  Image:     %s\n", l.Image)
	}
}

// printListingTable prints listings as a formatted table.
func printListingTable(out io.Writer, listings []*listing.Listing) error {
	if len(listings) == 0 {
		fmt.Fprintln(out, "No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tPRICE\tLOCATION\tCOUNTRY"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t-----\t--------\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range listings {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			l.ID, truncate(l.Title, 40), formatPrice(l.Price), dash(l.Location), dash(l.Country)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d listings\n", len(listings))
	return nil
}

// formatPrice formats an optional price in rupees, or "-" when unset.
func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return "Rs " + listing.FormatAmount(*p)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
