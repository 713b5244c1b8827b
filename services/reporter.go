package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"laptop-dashboard/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#045fba"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	priceStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6fa3f7"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#727372")).
			Padding(0, 2)
)

const (
	reportWidth = 54
	maxBarWidth = 30
)

// PrintInsightReport writes a styled terminal rendering of r to w.
func PrintInsightReport(w io.Writer, r *models.InsightReport) {
	thin := strings.Repeat("─", reportWidth)
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render("USED LAPTOP LISTINGS · INSIGHTS"))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, sectionStyle.Render("Overview"))
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Total listings : %s\n", valueStyle.Render(fmt.Sprint(r.TotalListings)))
	fmt.Fprintf(&b, "New condition  : %s\n", valueStyle.Render(fmt.Sprint(r.NewListings)))
	fmt.Fprintf(&b, "Brands         : %s\n", valueStyle.Render(fmt.Sprint(r.Brands)))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, sectionStyle.Render("Price Statistics"))
	fmt.Fprintln(&b, thin)
	if r.TotalListings > 0 {
		fmt.Fprintf(&b, "Average price : %s\n", priceStyle.Render(FormatUSD(r.AveragePrice)))
		fmt.Fprintf(&b, "Minimum price : %s\n", priceStyle.Render(FormatUSD(r.MinPrice)))
		fmt.Fprintf(&b, "Maximum price : %s\n", priceStyle.Render(FormatUSD(r.MaxPrice)))
	} else {
		fmt.Fprintln(&b, "No price data available")
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, sectionStyle.Render("Number of Listings by RAM Size"))
	fmt.Fprintln(&b, thin)
	counts := make([]float64, len(r.RamCounts))
	for i, c := range r.RamCounts {
		counts[i] = float64(c.Count)
	}
	for i, c := range r.RamCounts {
		label := c.Label
		if label == "" {
			label = "(blank)"
		}
		fmt.Fprintf(&b, "%-10s %s (%d)\n", label, bar(counts[i], counts), c.Count)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, sectionStyle.Render("Price Distribution"))
	fmt.Fprintln(&b, thin)
	bins := make([]float64, len(r.PriceHistogram))
	for i, h := range r.PriceHistogram {
		bins[i] = float64(h.Count)
	}
	for i, h := range r.PriceHistogram {
		span := FormatUSD(h.Lower) + " – " + FormatUSD(h.Upper)
		fmt.Fprintf(&b, "%-26s %s (%d)\n", span, bar(bins[i], bins), h.Count)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, sectionStyle.Render("Average Price of New Laptops by RAM Size"))
	fmt.Fprintln(&b, thin)
	if len(r.MeanPriceByRam) == 0 {
		fmt.Fprintln(&b, "No new listings in range")
	}
	for _, g := range r.MeanPriceByRam {
		fmt.Fprintf(&b, "%-10s %s  (%d listings)\n", g.Label, priceStyle.Render(FormatUSD(g.Mean)), g.Count)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, sectionStyle.Render("Average Price by Release Year"))
	fmt.Fprintln(&b, thin)
	if len(r.MeanPriceByYear) == 0 {
		fmt.Fprintln(&b, "No listings with a known release year")
	}
	for _, y := range r.MeanPriceByYear {
		fmt.Fprintf(&b, "%-10s %s  (%d listings)\n", y.Label, priceStyle.Render(FormatUSD(y.Mean)), y.Count)
	}

	fmt.Fprintln(w, boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// bar scales v against the largest value in all.
func bar(v float64, all []float64) string {
	var max float64
	for _, x := range all {
		if x > max {
			max = x
		}
	}
	if max == 0 {
		return ""
	}
	n := int(v / max * maxBarWidth)
	if n == 0 && v > 0 {
		n = 1
	}
	return barStyle.Render(strings.Repeat("█", n))
}
