// Package listing provides the listing domain model and data access.
package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultImage is stored when a listing is created without an image URL.
const DefaultImage = "https://images.unsplash.com/photo-1568605114967-8130f3a36994"

// Listing represents a rentable place.
type Listing struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Image       string   `json:"image" db:"image"`
	Price       *float64 `json:"price,omitempty" db:"price"`
	Location    string   `json:"location" db:"location"`
	Country     string   `json:"country" db:"country"`
}

// newListing builds a listing from the fields present in f.
// Absent text fields are left empty and an absent price stays unset.
func newListing(f Fields) *Listing {
	l := &Listing{}
	f.apply(l)
	if l.Image == "" {
		l.Image = DefaultImage
	}
	return l
}

// FormatAmount renders a price with thousands separators, e.g. 20000 -> "20,000".
// Fractional amounts keep up to two decimals.
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		s = fmt.Sprintf("%.2f", v)
		whole, frac, _ = strings.Cut(s, ".")
	}

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	out := strings.Join(parts, ",")
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
