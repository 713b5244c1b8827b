package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptop-dashboard/models"
)

func sampleListings() []models.Listing {
	return sampleDataset().Listings()
}

func TestCountByRAM(t *testing.T) {
	got := CountByRAM([]models.Listing{
		{RamSize: "8 GB"},
		{RamSize: "16 GB"},
		{RamSize: "16 GB"},
		{RamSize: "4 GB"},
		{RamSize: "128 GB"},
	})

	want := []models.CategoryCount{
		{Label: "16 GB", Count: 2},
		{Label: "8 GB", Count: 1},
		{Label: "4 GB", Count: 1},
		{Label: "128 GB", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CountByRAM mismatch (-want +got):\n%s", diff)
	}
}

func TestPriceHistogram(t *testing.T) {
	listings := []models.Listing{{Price: 0}, {Price: 10}, {Price: 30}, {Price: 59.9}, {Price: 60}}

	got := PriceHistogram(listings, 6)
	require.Len(t, got, 6)

	assert.Equal(t, 0.0, got[0].Lower)
	assert.Equal(t, 60.0, got[5].Upper)
	counts := make([]int, len(got))
	total := 0
	for i, b := range got {
		counts[i] = b.Count
		total += b.Count
	}
	assert.Equal(t, []int{1, 1, 0, 1, 0, 2}, counts, "max price lands in the last bin")
	assert.Equal(t, len(listings), total)
}

func TestPriceHistogramCountsMatchEdges(t *testing.T) {
	prices := []float64{0, 0.63, 1.26, 1.89, 2.52, 3.15, 3.78}
	listings := make([]models.Listing, len(prices))
	for i, p := range prices {
		listings[i] = models.Listing{Price: p}
	}

	got := PriceHistogram(listings, 6)
	require.Len(t, got, 6)

	for i, b := range got {
		last := i == len(got)-1
		want := 0
		for _, p := range prices {
			if p >= b.Lower && (p < b.Upper || (last && p == b.Upper)) {
				want++
			}
		}
		assert.Equal(t, want, b.Count, "bin %d [%v, %v)", i, b.Lower, b.Upper)
	}
}

func TestPriceHistogramDegenerate(t *testing.T) {
	assert.Nil(t, PriceHistogram(nil, 6))

	same := PriceHistogram([]models.Listing{{Price: 99}, {Price: 99}}, 6)
	require.Len(t, same, 1)
	assert.Equal(t, models.HistogramBin{Lower: 99, Upper: 99, Count: 2}, same[0])
}

func TestMeanPriceByRAM(t *testing.T) {
	listings := []models.Listing{
		{RamSize: "16 GB", Price: 400, Condition: "New"},
		{RamSize: "8 GB", Price: 100, Condition: "New"},
		{RamSize: "8 GB", Price: 200, Condition: "new"},
	}

	got, err := MeanPriceByRAM(listings, nil)
	require.NoError(t, err)

	want := []models.GroupMean{
		{Label: "8 GB", Mean: 150, Count: 2},
		{Label: "16 GB", Mean: 400, Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MeanPriceByRAM mismatch (-want +got):\n%s", diff)
	}
}

func TestMeanPriceByRAMExclusions(t *testing.T) {
	listings := []models.Listing{
		{RamSize: "8 GB", Price: 100, Condition: "New", ScreenSize: 13},
		{RamSize: "8 GB", Price: 300, Condition: "New", ScreenSize: 15},
		{RamSize: "8 GB", Price: 999, Condition: "Used", ScreenSize: 15},
		{RamSize: "128 GB", Price: 5000, Condition: "New", ScreenSize: 15},
		{RamSize: "32 GB", Price: 800, Condition: "NEW", ScreenSize: 16},
	}

	got, err := MeanPriceByRAM(listings, &models.Range{Min: 14, Max: 16})
	require.NoError(t, err)

	want := []models.GroupMean{
		{Label: "8 GB", Mean: 300, Count: 1},
		{Label: "32 GB", Mean: 800, Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MeanPriceByRAM mismatch (-want +got):\n%s", diff)
	}

	_, err = MeanPriceByRAM(listings, &models.Range{Min: 16, Max: 14})
	assert.ErrorIs(t, err, ErrInvertedRange)
}

func TestMeanPriceByYear(t *testing.T) {
	listings := []models.Listing{
		{Price: 500, ReleaseYear: 2020},
		{Price: 50, ReleaseYear: 2005},
		{Price: 70},
		{Price: 300, ReleaseYear: 2020},
		{Price: 200, ReleaseYear: 2010},
	}

	got := MeanPriceByYear(listings)
	want := []models.YearMean{
		{Year: 2010, Label: "2010", Mean: 200, Count: 1},
		{Year: 2020, Label: "2020", Mean: 400, Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MeanPriceByYear mismatch (-want +got):\n%s", diff)
	}
}

func TestInsightGenerate(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r, err := svc.Generate(sampleListings(), InsightOptions{})
	require.NoError(t, err)

	assert.Equal(t, 5, r.TotalListings)
	assert.Equal(t, 2, r.NewListings)
	assert.Equal(t, 2, r.Brands)
	assert.Equal(t, 150.0, r.MinPrice)
	assert.Equal(t, 900.0, r.MaxPrice)
	assert.InDelta(t, 460.0, r.AveragePrice, 1e-9)
	assert.Len(t, r.PriceHistogram, DefaultHistogramBins)
	assert.Equal(t, []models.GroupMean{{Label: "16 GB", Mean: 500, Count: 2}}, r.MeanPriceByRam)
	assert.Equal(t, []int{2018, 2020, 2021}, years(r.MeanPriceByYear))
}

func TestInsightGenerateNewOnly(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r, err := svc.Generate(sampleListings(), InsightOptions{NewOnly: true, Bins: 3})
	require.NoError(t, err)

	assert.Equal(t, 2, r.TotalListings)
	assert.Equal(t, []models.CategoryCount{{Label: "16 GB", Count: 2}}, r.RamCounts)
	assert.Len(t, r.PriceHistogram, 3)
	assert.Equal(t, []int{2020, 2021}, years(r.MeanPriceByYear))
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r, err := svc.Generate(nil, InsightOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, r.TotalListings)
	assert.Empty(t, r.RamCounts)
	assert.Empty(t, r.PriceHistogram)
	assert.Empty(t, r.MeanPriceByRam)
	assert.Empty(t, r.MeanPriceByYear)
}

func years(ym []models.YearMean) []int {
	out := make([]int, len(ym))
	for i, y := range ym {
		out[i] = y.Year
	}
	return out
}
