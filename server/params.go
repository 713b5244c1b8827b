package server

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"laptop-dashboard/models"
	"laptop-dashboard/services"
)

// ErrBadParam marks a query parameter that could not be parsed.
var ErrBadParam = errors.New("invalid query parameter")

// parseSelection reads the explore-view controls from the query string:
//
//	brand=Dell&brand=HP   multi-select; absent means ALL
//	filtered=1            set by the form, so an empty brand list means "none"
//	price_min, price_max  inclusive bounds; either may be omitted
//	screen                ALL, <14, 14-16, >16 (or their labels)
func parseSelection(c *gin.Context, ds *models.Dataset) (models.Selection, error) {
	var sel models.Selection

	brands := c.QueryArray("brand")
	switch {
	case len(brands) > 0:
		sel.Brands = brands
	case c.Query("filtered") != "":
		sel.Brands = []string{}
	}

	price, err := parseRange(c, "price_min", "price_max", ds.PriceBounds())
	if err != nil {
		return sel, err
	}
	sel.Price = price

	sel.Screen, err = services.ParseScreenBucket(c.Query("screen"))
	if err != nil {
		return sel, err
	}
	return sel, nil
}

// parseScreenRange reads screen_min/screen_max for the visualizations view.
func parseScreenRange(c *gin.Context, ds *models.Dataset) (*models.Range, error) {
	return parseRange(c, "screen_min", "screen_max", ds.ScreenBounds())
}

// parseRange returns nil when neither bound is present. A missing bound
// falls back to the matching side of def.
func parseRange(c *gin.Context, minKey, maxKey string, def models.Range) (*models.Range, error) {
	minStr, hasMin := c.GetQuery(minKey)
	maxStr, hasMax := c.GetQuery(maxKey)
	if !hasMin && !hasMax {
		return nil, nil
	}

	r := def
	var err error
	if hasMin && strings.TrimSpace(minStr) != "" {
		if r.Min, err = parseFloat(minKey, minStr); err != nil {
			return nil, err
		}
	}
	if hasMax && strings.TrimSpace(maxStr) != "" {
		if r.Max, err = parseFloat(maxKey, maxStr); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

func parseFloat(key, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrBadParam, key, raw)
	}
	return v, nil
}

// isUserError reports whether err was caused by the request rather than
// the server.
func isUserError(err error) bool {
	return errors.Is(err, ErrBadParam) ||
		errors.Is(err, services.ErrInvertedRange) ||
		errors.Is(err, services.ErrUnknownBucket)
}
