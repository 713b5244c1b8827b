package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"laptop-dashboard/models"
)

var (
	// ErrInvertedRange is returned when a range's lower bound exceeds its
	// upper bound (or either bound is NaN).
	ErrInvertedRange = errors.New("range minimum is greater than maximum")
	// ErrUnknownBucket is returned for a screen bucket outside models.ScreenBuckets.
	ErrUnknownBucket = errors.New("unknown screen size bucket")
)

// ValidateRange checks that r is a usable inclusive range.
func ValidateRange(r models.Range) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return fmt.Errorf("%w: [%g, %g]", ErrInvertedRange, r.Min, r.Max)
	}
	return nil
}

// ParseScreenBucket maps a control value onto a bucket. Both the short form
// ("<14") and the UI label (`Under 14"`) are accepted; an empty value means
// no selection and is treated as ALL.
func ParseScreenBucket(s string) (models.ScreenBucket, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.ScreenAll, nil
	}
	for _, b := range models.ScreenBuckets {
		if strings.EqualFold(s, string(b)) || s == b.Label() {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBucket, s)
}

// MatchesScreenBucket reports whether a screen size falls in bucket b.
// The buckets partition all sizes at 14 and 16; both boundaries belong to
// the middle bucket.
func MatchesScreenBucket(b models.ScreenBucket, size float64) bool {
	switch b {
	case models.ScreenUnder14:
		return size < 14
	case models.Screen14To16:
		return size >= 14 && size <= 16
	case models.ScreenOver16:
		return size > 16
	default:
		return true
	}
}

// Filter returns the rows of ds that satisfy every active predicate of sel,
// in source order. The dataset is not modified.
func Filter(ds *models.Dataset, sel models.Selection) ([]models.Listing, error) {
	price := ds.PriceBounds()
	if sel.Price != nil {
		price = *sel.Price
	}
	if err := ValidateRange(price); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	bucket, err := ParseScreenBucket(string(sel.Screen))
	if err != nil {
		return nil, err
	}

	allBrands, brandSet := brandFilter(sel.Brands)

	out := make([]models.Listing, 0, ds.Len())
	ds.Each(func(l models.Listing) {
		if !allBrands && !brandSet[l.Brand] {
			return
		}
		if !price.Contains(l.Price) {
			return
		}
		if !MatchesScreenBucket(bucket, l.ScreenSize) {
			return
		}
		out = append(out, l)
	})
	return out, nil
}

// brandFilter resolves a brand selection. A nil selection is the default
// ["ALL"]; a non-nil empty selection matches nothing.
func brandFilter(brands []string) (all bool, set map[string]bool) {
	if brands == nil {
		return true, nil
	}
	set = make(map[string]bool, len(brands))
	for _, b := range brands {
		if b == models.AllBrands {
			return true, nil
		}
		set[b] = true
	}
	return false, set
}

// NewOnly returns the listings whose condition is "new".
func NewOnly(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.IsNew() {
			out = append(out, l)
		}
	}
	return out
}
