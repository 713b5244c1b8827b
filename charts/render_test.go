package charts

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptop-dashboard/models"
)

func assertPNG(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, width, cfg.Width)
	assert.Equal(t, height, cfg.Height)
}

func TestRenderRamCount(t *testing.T) {
	var buf bytes.Buffer
	err := RenderRamCount(&buf, []models.CategoryCount{
		{Label: "16 GB", Count: 12},
		{Label: "8 GB", Count: 7},
		{Label: "", Count: 1},
	})
	require.NoError(t, err)
	assertPNG(t, &buf)
}

func TestRenderPriceHistogram(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPriceHistogram(&buf, []models.HistogramBin{
		{Lower: 0, Upper: 100, Count: 3},
		{Lower: 100, Upper: 200, Count: 0},
		{Lower: 200, Upper: 300, Count: 5},
	})
	require.NoError(t, err)
	assertPNG(t, &buf)
}

func TestRenderRamMeanPrice(t *testing.T) {
	var buf bytes.Buffer
	err := RenderRamMeanPrice(&buf, []models.GroupMean{
		{Label: "8 GB", Mean: 150, Count: 2},
		{Label: "16 GB", Mean: 400, Count: 1},
	})
	require.NoError(t, err)
	assertPNG(t, &buf)
}

func TestRenderYearMeanPrice(t *testing.T) {
	var buf bytes.Buffer
	err := RenderYearMeanPrice(&buf, []models.YearMean{
		{Year: 2018, Label: "2018", Mean: 320},
		{Year: 2020, Label: "2020", Mean: 410},
		{Year: 2021, Label: "2021", Mean: 515},
	})
	require.NoError(t, err)
	assertPNG(t, &buf)
}

func TestRenderYearMeanPriceSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	err := RenderYearMeanPrice(&buf, []models.YearMean{{Year: 2020, Label: "2020", Mean: 410}})
	require.NoError(t, err)
	assertPNG(t, &buf)
}

func TestRenderNoData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderRamCount(&buf, nil), ErrNoData)
	assert.ErrorIs(t, RenderPriceHistogram(&buf, nil), ErrNoData)
	assert.ErrorIs(t, RenderRamMeanPrice(&buf, nil), ErrNoData)
	assert.ErrorIs(t, RenderYearMeanPrice(&buf, nil), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestYearFormatterIsPlainInteger(t *testing.T) {
	assert.Equal(t, "2020", yearFormatter(2020.0))
	assert.Equal(t, "", yearFormatter("2020"))
}
