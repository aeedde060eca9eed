package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evcraddock/hustlebust/internal/listing"
)

func TestFormatPrice(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		price    *float64
		expected string
	}{
		{"unset", nil, "-"},
		{"zero", f(0), "Rs 0"},
		{"small", f(999), "Rs 999"},
		{"thousands", f(20000), "Rs 20,000"},
		{"millions", f(1000000), "Rs 1,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatPrice(tt.price)
			if result != tt.expected {
				t.Errorf("formatPrice() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestPrintListingTable(t *testing.T) {
	price := 1500.0
	listings := []*listing.Listing{
		{ID: "a1", Title: "Cozy Cabin", Price: &price, Location: "Manali", Country: "India"},
		{ID: "b2", Title: "Beach Hut"},
	}

	var buf bytes.Buffer
	if err := printListingTable(&buf, listings); err != nil {
		t.Fatalf("printListingTable: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"TITLE", "Cozy Cabin", "Rs 1,500", "Manali", "Beach Hut", "Total: 2 listings"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintListingTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printListingTable(&buf, nil); err != nil {
		t.Fatalf("printListingTable: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No listings found." {
		t.Errorf("unexpected output %q", buf.String())
	}
}
