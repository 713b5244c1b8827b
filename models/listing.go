package models

import (
	"math"
	"slices"
	"strings"
)

// RawListing holds one dataset row exactly as the source delivered it.
// Every source (CSV file, PostgreSQL table) produces these before parsing.
type RawListing struct {
	ItemNumber  string
	Brand       string
	Price       string
	ScreenSize  string
	RamSize     string
	Condition   string
	ReleaseYear string
}

// Listing is a parsed marketplace item.
type Listing struct {
	ItemNumber string  `json:"item_number"`
	Brand      string  `json:"brand"`
	Price      float64 `json:"price"`
	ScreenSize float64 `json:"screen_size"`
	RamSize    string  `json:"ram_size"`
	Condition  string  `json:"condition"`
	// ReleaseYear is 0 when the source value was missing or not numeric.
	ReleaseYear int `json:"release_year,omitempty"`
}

// Year returns the release year and whether it is known.
func (l Listing) Year() (int, bool) {
	return l.ReleaseYear, l.ReleaseYear != 0
}

// IsNew reports whether the listing's condition is "new", ignoring case.
func (l Listing) IsNew() bool {
	return strings.EqualFold(strings.TrimSpace(l.Condition), "new")
}

// RamSizes is the ordered RAM vocabulary used for RAM-based aggregation.
var RamSizes = []string{"4 GB", "6 GB", "8 GB", "12 GB", "16 GB", "20 GB", "32 GB", "64 GB"}

// RamRank returns the position of label in RamSizes, or -1 when the label is
// outside the vocabulary.
func RamRank(label string) int {
	return slices.Index(RamSizes, strings.TrimSpace(label))
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Dataset is the immutable table loaded at start-up. It is safe for
// concurrent readers.
type Dataset struct {
	listings []Listing
	brands   []string
	price    Range
	screen   Range
}

// NewDataset takes ownership of a copy of listings.
func NewDataset(listings []Listing) *Dataset {
	ds := &Dataset{listings: slices.Clone(listings)}

	seen := make(map[string]bool)
	for i, l := range ds.listings {
		if !seen[l.Brand] {
			seen[l.Brand] = true
			ds.brands = append(ds.brands, l.Brand)
		}
		if i == 0 {
			ds.price = Range{Min: l.Price, Max: l.Price}
			ds.screen = Range{Min: l.ScreenSize, Max: l.ScreenSize}
			continue
		}
		ds.price.Min = math.Min(ds.price.Min, l.Price)
		ds.price.Max = math.Max(ds.price.Max, l.Price)
		ds.screen.Min = math.Min(ds.screen.Min, l.ScreenSize)
		ds.screen.Max = math.Max(ds.screen.Max, l.ScreenSize)
	}
	return ds
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.listings) }

// Listings returns a copy of every row in source order.
func (d *Dataset) Listings() []Listing { return slices.Clone(d.listings) }

// Each calls fn for every row in source order without copying the table.
func (d *Dataset) Each(fn func(l Listing)) {
	for _, l := range d.listings {
		fn(l)
	}
}

// Brands returns the distinct brands in first-appearance order.
func (d *Dataset) Brands() []string { return slices.Clone(d.brands) }

// PriceBounds returns the observed min/max price.
func (d *Dataset) PriceBounds() Range { return d.price }

// ScreenBounds returns the observed min/max screen size.
func (d *Dataset) ScreenBounds() Range { return d.screen }
