// Package charts renders the dashboard's aggregate tables as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"laptop-dashboard/models"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("charts: no data to plot")

// Static chart titles.
const (
	TitleRamCount     = "Number of Listings by RAM Size"
	TitleHistogram    = "Price Distribution"
	TitleRamMeanPrice = "Average Price of New Laptops by RAM Size"
	TitleYearMean     = "Average Price by Release Year"
)

const (
	width    = 900
	height   = 450
	barWidth = 60
)

var (
	barColor  = drawing.ColorFromHex("045fba")
	lineColor = drawing.ColorFromHex("f28e2b")
)

func barStyle() chart.Style {
	return chart.Style{
		FillColor:   barColor,
		StrokeColor: barColor,
		StrokeWidth: 0,
	}
}

func usdFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("$%.0f", f)
	}
	return ""
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}

// yearFormatter prints a year as a plain integer ("2020", never "2,020").
func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}

// yRange pads the top of the value axis so the tallest bar is not clipped.
func yRange(values []float64) *chart.ContinuousRange {
	var max float64
	for _, v := range values {
		max = math.Max(max, v)
	}
	if max <= 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max * 1.1}
}

func renderBars(w io.Writer, title string, bars []chart.Value, formatter chart.ValueFormatter) error {
	values := make([]float64, len(bars))
	for i, b := range bars {
		values[i] = b.Value
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: 20,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		YAxis: chart.YAxis{
			Range:          yRange(values),
			ValueFormatter: formatter,
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render %q: %w", title, err)
	}
	return nil
}

// RenderRamCount draws the listing count per RAM size, in the given order.
func RenderRamCount(w io.Writer, counts []models.CategoryCount) error {
	if len(counts) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		label := c.Label
		if label == "" {
			label = "(blank)"
		}
		bars[i] = chart.Value{Value: float64(c.Count), Label: label, Style: barStyle()}
	}
	return renderBars(w, TitleRamCount, bars, countFormatter)
}

// RenderPriceHistogram draws one bar per price bin labelled with its range.
func RenderPriceHistogram(w io.Writer, bins []models.HistogramBin) error {
	if len(bins) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("$%.0f-$%.0f", b.Lower, b.Upper),
			Style: barStyle(),
		}
	}
	return renderBars(w, TitleHistogram, bars, countFormatter)
}

// RenderRamMeanPrice draws the mean price of new listings per RAM size.
func RenderRamMeanPrice(w io.Writer, means []models.GroupMean) error {
	if len(means) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, len(means))
	for i, m := range means {
		bars[i] = chart.Value{Value: m.Mean, Label: m.Label, Style: barStyle()}
	}
	return renderBars(w, TitleRamMeanPrice, bars, usdFormatter)
}

// RenderYearMeanPrice draws mean price against release year as a line with
// one tick per year.
func RenderYearMeanPrice(w io.Writer, means []models.YearMean) error {
	if len(means) == 0 {
		return ErrNoData
	}

	xs := make([]float64, len(means))
	ys := make([]float64, len(means))
	for i, m := range means {
		xs[i] = float64(m.Year)
		ys[i] = m.Mean
	}

	// go-chart takes the x range from the tick span, so unlabelled edge
	// ticks keep a single year from collapsing it to zero.
	lo, hi := xs[0]-0.5, xs[len(xs)-1]+0.5
	ticks := make([]chart.Tick, 0, len(means)+2)
	ticks = append(ticks, chart.Tick{Value: lo})
	for i, m := range means {
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: m.Label})
	}
	ticks = append(ticks, chart.Tick{Value: hi})

	graph := chart.Chart{
		Title:      TitleYearMean,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Release Year",
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks:          ticks,
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Average Price (USD)",
			Range:          yRange(ys),
			ValueFormatter: usdFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Average Price",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 3,
					DotColor:    lineColor,
					DotWidth:    4,
				},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render %q: %w", TitleYearMean, err)
	}
	return nil
}
