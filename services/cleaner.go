package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"laptop-dashboard/models"
	"laptop-dashboard/utils"
)

// ErrInvalidRow marks a row whose Price or Screen Size is missing or not a
// number. Such rows make the whole dataset unusable.
var ErrInvalidRow = errors.New("invalid row")

// maxReportedRows caps how many bad rows are listed in the load error.
const maxReportedRows = 5

var currencyReplacer = strings.NewReplacer("$", "", "USD", "", ",", "", " ", "")

// Cleaner turns RawListings into Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses every raw row, keeping source order. Rows with a bad Price or
// Screen Size fail the whole load; unknown release years are tolerated.
func (c *Cleaner) Clean(raw []*models.RawListing) ([]models.Listing, error) {
	firstLine := make(map[string]int)
	result := make([]models.Listing, 0, len(raw))
	var errs []error
	unknownYears := 0

	for i, r := range raw {
		// header is line 1
		line := i + 2

		price, err := parsePrice(r.Price)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: price: %w", line, err))
			continue
		}
		screen, err := parseScreenSize(r.ScreenSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: screen size: %w", line, err))
			continue
		}

		item := strings.TrimSpace(r.ItemNumber)
		if item != "" {
			if first, dup := firstLine[item]; dup {
				c.logger.Warn("[cleaner] Duplicate item number %s at line %d (first seen at line %d)", item, line, first)
			} else {
				firstLine[item] = line
			}
		}

		year := parseReleaseYear(r.ReleaseYear)
		if year == 0 {
			unknownYears++
		}

		result = append(result, models.Listing{
			ItemNumber:  item,
			Brand:       normaliseText(r.Brand),
			Price:       price,
			ScreenSize:  screen,
			RamSize:     normaliseText(r.RamSize),
			Condition:   normaliseText(r.Condition),
			ReleaseYear: year,
		})
	}

	if len(errs) > 0 {
		for _, e := range errs {
			c.logger.Error("[cleaner] %v", e)
		}
		shown := errs
		if len(shown) > maxReportedRows {
			shown = shown[:maxReportedRows]
		}
		return nil, fmt.Errorf("%w: %d of %d rows rejected: %w",
			ErrInvalidRow, len(errs), len(raw), errors.Join(shown...))
	}

	c.logger.Info("[cleaner] Parsed %d listings (%d with unknown release year)",
		len(result), unknownYears)
	return result, nil
}

// parsePrice accepts plain numbers and tolerates a "$" prefix and thousands
// separators, e.g. "$1,200.50".
func parsePrice(raw string) (float64, error) {
	cleaned := currencyReplacer.Replace(strings.TrimSpace(raw))
	v, err := parseNumber(cleaned)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %q", raw)
	}
	return v, nil
}

// parseScreenSize accepts "15.6", `15.6"` and "15.6 in".
func parseScreenSize(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSpace(strings.TrimSuffix(s, "in"))
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive value %q", raw)
	}
	return v, nil
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number %q", s)
	}
	return v, nil
}

// parseReleaseYear coerces the raw value to a whole year, returning 0 when it
// is missing, non-numeric or fractional.
func parseReleaseYear(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v != math.Trunc(v) || v <= 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
