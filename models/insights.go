package models

// AllBrands is the brand-selection sentinel meaning "no brand restriction".
const AllBrands = "ALL"

// ScreenBucket names a screen-size sub-range selectable in the explore view.
type ScreenBucket string

const (
	ScreenAll     ScreenBucket = "ALL"
	ScreenUnder14 ScreenBucket = "<14"
	Screen14To16  ScreenBucket = "14-16"
	ScreenOver16  ScreenBucket = ">16"
)

// ScreenBuckets lists the selectable buckets in display order.
var ScreenBuckets = []ScreenBucket{ScreenAll, ScreenUnder14, Screen14To16, ScreenOver16}

// Label returns the text shown for the bucket in the UI.
func (b ScreenBucket) Label() string {
	switch b {
	case ScreenUnder14:
		return `Under 14"`
	case Screen14To16:
		return `14" - 16"`
	case ScreenOver16:
		return `Over 16"`
	default:
		return "ALL"
	}
}

// Selection is the full state of the explore-view filter controls.
type Selection struct {
	// Brands is nil when no choice was made, which means ALL.
	Brands []string
	// Price is nil when the slider was left at the dataset bounds.
	Price  *Range
	Screen ScreenBucket
}

// CategoryCount is the number of rows sharing one Ram Size value.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramBin counts rows whose price falls in [Lower, Upper).
// The last bin also includes its upper edge.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// GroupMean is the mean price of one group.
type GroupMean struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// YearMean is the mean price of listings released in Year.
type YearMean struct {
	Year  int     `json:"year"`
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// InsightReport holds every aggregate computed over one set of listings.
type InsightReport struct {
	TotalListings int     `json:"total_listings"`
	NewListings   int     `json:"new_listings"`
	Brands        int     `json:"brands"`
	AveragePrice  float64 `json:"average_price"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`

	RamCounts       []CategoryCount `json:"ram_counts"`
	PriceHistogram  []HistogramBin  `json:"price_histogram"`
	MeanPriceByRam  []GroupMean     `json:"mean_price_by_ram"`
	MeanPriceByYear []YearMean      `json:"mean_price_by_year"`
}
