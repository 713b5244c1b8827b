package services

import (
	"math"
	"sort"
	"strconv"

	"laptop-dashboard/models"
	"laptop-dashboard/utils"
)

// Release years outside this window are treated as data-entry noise.
const (
	MinReleaseYear = 2010
	MaxReleaseYear = 9999
)

// DefaultHistogramBins is the number of price bins shown on the dashboard.
const DefaultHistogramBins = 6

// InsightOptions selects the subset each aggregate is computed over.
type InsightOptions struct {
	// Bins is the histogram bin count; zero means DefaultHistogramBins.
	Bins int
	// Screen restricts the mean-price-by-RAM aggregate; nil means no restriction.
	Screen *models.Range
	// NewOnly restricts the count, histogram and year aggregates to new listings.
	NewOnly bool
}

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes every aggregate over listings. It only fails when
// opts.Screen is an inverted range.
func (s *InsightService) Generate(listings []models.Listing, opts InsightOptions) (*models.InsightReport, error) {
	byRam, err := MeanPriceByRAM(listings, opts.Screen)
	if err != nil {
		return nil, err
	}

	subset := listings
	if opts.NewOnly {
		subset = NewOnly(listings)
	}

	bins := opts.Bins
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	report := &models.InsightReport{
		RamCounts:       CountByRAM(subset),
		PriceHistogram:  PriceHistogram(subset, bins),
		MeanPriceByRam:  byRam,
		MeanPriceByYear: MeanPriceByYear(subset),
	}

	report.TotalListings = len(subset)
	brands := make(map[string]struct{})
	var total float64
	for i, l := range subset {
		if l.IsNew() {
			report.NewListings++
		}
		brands[l.Brand] = struct{}{}
		total += l.Price
		if i == 0 || l.Price < report.MinPrice {
			report.MinPrice = l.Price
		}
		if i == 0 || l.Price > report.MaxPrice {
			report.MaxPrice = l.Price
		}
	}
	report.Brands = len(brands)
	if len(subset) > 0 {
		report.AveragePrice = total / float64(len(subset))
	}

	s.logger.Debug("[insights] %d listings → %d ram groups, %d bins, %d ram means, %d years",
		len(subset), len(report.RamCounts), len(report.PriceHistogram),
		len(report.MeanPriceByRam), len(report.MeanPriceByYear))
	return report, nil
}

// CountByRAM counts rows per raw Ram Size value, most frequent first. Ties
// keep first-appearance order.
func CountByRAM(listings []models.Listing) []models.CategoryCount {
	idx := make(map[string]int)
	var counts []models.CategoryCount
	for _, l := range listings {
		i, ok := idx[l.RamSize]
		if !ok {
			i = len(counts)
			idx[l.RamSize] = i
			counts = append(counts, models.CategoryCount{Label: l.RamSize})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// PriceHistogram splits the observed price span into equal-width bins, each
// covering [Lower, Upper). The maximum price falls in the last bin. When every price is equal a
// single bin holds all rows.
func PriceHistogram(listings []models.Listing, bins int) []models.HistogramBin {
	if len(listings) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := listings[0].Price, listings[0].Price
	for _, l := range listings[1:] {
		lo = math.Min(lo, l.Price)
		hi = math.Max(hi, l.Price)
	}

	if lo == hi {
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: len(listings)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	// Bins are matched against the stored edges so every count agrees with
	// the [Lower, Upper) span it reports.
	for _, l := range listings {
		i := sort.Search(bins, func(k int) bool { return l.Price < out[k].Upper })
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// MeanPriceByRAM averages the price of new listings per RAM size, in
// vocabulary order. Sizes outside models.RamSizes are ignored and sizes with
// no rows are omitted. screen, when set, restricts rows to an inclusive
// screen-size range.
func MeanPriceByRAM(listings []models.Listing, screen *models.Range) ([]models.GroupMean, error) {
	if screen != nil {
		if err := ValidateRange(*screen); err != nil {
			return nil, err
		}
	}

	sums := make([]float64, len(models.RamSizes))
	counts := make([]int, len(models.RamSizes))
	for _, l := range listings {
		if !l.IsNew() {
			continue
		}
		if screen != nil && !screen.Contains(l.ScreenSize) {
			continue
		}
		rank := models.RamRank(l.RamSize)
		if rank < 0 {
			continue
		}
		sums[rank] += l.Price
		counts[rank]++
	}

	var out []models.GroupMean
	for i, label := range models.RamSizes {
		if counts[i] == 0 {
			continue
		}
		out = append(out, models.GroupMean{
			Label: label,
			Mean:  sums[i] / float64(counts[i]),
			Count: counts[i],
		})
	}
	return out, nil
}

// MeanPriceByYear averages price per release year, oldest first. Rows with
// an unknown year or a year outside [MinReleaseYear, MaxReleaseYear] are
// excluded.
func MeanPriceByYear(listings []models.Listing) []models.YearMean {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, l := range listings {
		year, ok := l.Year()
		if !ok || year < MinReleaseYear || year > MaxReleaseYear {
			continue
		}
		sums[year] += l.Price
		counts[year]++
	}

	out := make([]models.YearMean, 0, len(counts))
	for year, n := range counts {
		out = append(out, models.YearMean{
			Year:  year,
			Label: strconv.Itoa(year),
			Mean:  sums[year] / float64(n),
			Count: n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
