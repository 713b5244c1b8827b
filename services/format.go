package services

import (
	"github.com/shopspring/decimal"
)

// FormatUSD renders a price the way the listings table shows it: a dollar
// sign, a space and exactly two decimals ("$ 1234.50").
func FormatUSD(v float64) string {
	return "$ " + decimal.NewFromFloat(v).StringFixed(2)
}
