package listing

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Form keys for the recognized listing fields.
const (
	KeyTitle       = "listing[title]"
	KeyDescription = "listing[description]"
	KeyImage       = "listing[image]"
	KeyImageURL    = "listing[image][url]"
	KeyPrice       = "listing[price]"
	KeyLocation    = "listing[location]"
	KeyCountry     = "listing[country]"
)

// Fields is the set of listing fields supplied by a caller.
// A nil pointer means the field was not supplied.
type Fields struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	// ClearPrice removes the stored price. It is set when the price
	// field is supplied blank.
	ClearPrice bool    `json:"clear_price,omitempty"`
	Location   *string `json:"location,omitempty"`
	Country    *string `json:"country,omitempty"`
}

// Empty reports whether no field was supplied.
func (f Fields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Image == nil &&
		f.Price == nil && !f.ClearPrice && f.Location == nil && f.Country == nil
}

// Normalize returns f with surrounding whitespace trimmed from every
// supplied text field.
func (f Fields) Normalize() Fields {
	f.Title = trimmed(f.Title)
	f.Description = trimmed(f.Description)
	f.Image = trimmed(f.Image)
	f.Location = trimmed(f.Location)
	f.Country = trimmed(f.Country)
	return f
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// apply copies the supplied fields onto l.
func (f Fields) apply(l *Listing) {
	if f.Title != nil {
		l.Title = *f.Title
	}
	if f.Description != nil {
		l.Description = *f.Description
	}
	if f.Image != nil {
		l.Image = *f.Image
	}
	if f.ClearPrice {
		l.Price = nil
	}
	if f.Price != nil {
		p := *f.Price
		l.Price = &p
	}
	if f.Location != nil {
		l.Location = *f.Location
	}
	if f.Country != nil {
		l.Country = *f.Country
	}
}

// ParseForm extracts listing fields from form values keyed as listing[name].
// Unknown keys are ignored. A supplied price must be a finite number;
// a blank price clears it.
func ParseForm(values url.Values) (Fields, error) {
	var f Fields

	f.Title = formString(values, KeyTitle)
	f.Description = formString(values, KeyDescription)
	f.Location = formString(values, KeyLocation)
	f.Country = formString(values, KeyCountry)

	f.Image = formString(values, KeyImageURL)
	if f.Image == nil {
		f.Image = formString(values, KeyImage)
	}

	if raw := trimmed(formString(values, KeyPrice)); raw != nil {
		if *raw == "" {
			f.ClearPrice = true
		} else {
			price, err := ParsePrice(*raw)
			if err != nil {
				return Fields{}, &FieldError{Field: "price", Value: *raw, Err: err}
			}
			f.Price = &price
		}
	}

	return f.Normalize(), nil
}

// ParsePrice parses a price, rejecting NaN and infinities.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("must be a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("must be a finite number")
	}
	return v, nil
}

func formString(values url.Values, key string) *string {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}
