package server

import (
	"net/url"
	"strconv"

	"laptop-dashboard/charts"
	"laptop-dashboard/models"
	"laptop-dashboard/services"
)

// BrandOption is one entry of the brand multi-select.
type BrandOption struct {
	Name     string
	Selected bool
}

// BucketOption is one entry of the screen-size selector.
type BucketOption struct {
	Value    string
	Label    string
	Selected bool
}

// TableRow is a listing formatted for display.
type TableRow struct {
	ItemNumber  string
	Brand       string
	Price       string
	ScreenSize  string
	RamSize     string
	Condition   string
	ReleaseYear string
}

// ExploreView is everything the explore page renders.
type ExploreView struct {
	Brands      []BrandOption
	Buckets     []BucketOption
	PriceBounds models.Range
	Price       models.Range
	Rows        []TableRow
	Total       int
	Error       string
}

// ChartRef points the page at one rendered chart.
type ChartRef struct {
	Title string
	URL   string
	Empty bool
}

// VisualizationsView is everything the visualizations page renders.
type VisualizationsView struct {
	ScreenBounds models.Range
	Screen       models.Range
	Charts       []ChartRef
	Error        string
}

// BuildExploreView filters ds with sel and formats the result. It is pure:
// the same dataset and selection always give the same view.
func BuildExploreView(ds *models.Dataset, sel models.Selection) (ExploreView, error) {
	view := exploreControls(ds, sel)

	rows, err := services.Filter(ds, sel)
	if err != nil {
		return view, err
	}

	view.Rows = make([]TableRow, len(rows))
	for i, l := range rows {
		view.Rows[i] = formatRow(l)
	}
	return view, nil
}

// exploreControls fills the control state without touching the table, so a
// rejected selection can still be re-rendered.
func exploreControls(ds *models.Dataset, sel models.Selection) ExploreView {
	view := ExploreView{
		PriceBounds: ds.PriceBounds(),
		Price:       ds.PriceBounds(),
		Total:       ds.Len(),
	}
	if sel.Price != nil {
		view.Price = *sel.Price
	}

	chosen := make(map[string]bool)
	if sel.Brands == nil {
		chosen[models.AllBrands] = true
	}
	for _, b := range sel.Brands {
		chosen[b] = true
	}
	view.Brands = append(view.Brands, BrandOption{Name: models.AllBrands, Selected: chosen[models.AllBrands]})
	for _, b := range ds.Brands() {
		view.Brands = append(view.Brands, BrandOption{Name: b, Selected: chosen[b]})
	}

	current := sel.Screen
	if current == "" {
		current = models.ScreenAll
	}
	for _, b := range models.ScreenBuckets {
		view.Buckets = append(view.Buckets, BucketOption{
			Value:    string(b),
			Label:    b.Label(),
			Selected: b == current,
		})
	}
	return view
}

func formatRow(l models.Listing) TableRow {
	row := TableRow{
		ItemNumber: l.ItemNumber,
		Brand:      l.Brand,
		Price:      services.FormatUSD(l.Price),
		ScreenSize: strconv.FormatFloat(l.ScreenSize, 'f', -1, 64),
		RamSize:    l.RamSize,
		Condition:  l.Condition,
	}
	if year, ok := l.Year(); ok {
		row.ReleaseYear = strconv.Itoa(year)
	}
	return row
}

// BuildVisualizationsView validates the screen range and lists the charts.
// Each chart is marked Empty when its aggregate has no rows.
func BuildVisualizationsView(ds *models.Dataset, screen *models.Range, insights *services.InsightService, bins int) (VisualizationsView, error) {
	view := VisualizationsView{
		ScreenBounds: ds.ScreenBounds(),
		Screen:       ds.ScreenBounds(),
	}
	if screen != nil {
		view.Screen = *screen
	}

	report, err := insights.Generate(ds.Listings(), services.InsightOptions{Bins: bins, Screen: &view.Screen})
	if err != nil {
		return view, err
	}

	q := url.Values{}
	q.Set("screen_min", strconv.FormatFloat(view.Screen.Min, 'f', -1, 64))
	q.Set("screen_max", strconv.FormatFloat(view.Screen.Max, 'f', -1, 64))

	view.Charts = []ChartRef{
		{Title: charts.TitleRamCount, URL: "/charts/" + ChartRamCount, Empty: len(report.RamCounts) == 0},
		{Title: charts.TitleHistogram, URL: "/charts/" + ChartHistogram, Empty: len(report.PriceHistogram) == 0},
		{Title: charts.TitleRamMeanPrice, URL: "/charts/" + ChartRamMeanPrice + "?" + q.Encode(), Empty: len(report.MeanPriceByRam) == 0},
		{Title: charts.TitleYearMean, URL: "/charts/" + ChartYearMean, Empty: len(report.MeanPriceByYear) == 0},
	}
	return view, nil
}
