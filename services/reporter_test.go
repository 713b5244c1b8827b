package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$ 1234.50", FormatUSD(1234.5))
	assert.Equal(t, "$ 0.00", FormatUSD(0))
	assert.Equal(t, "$ 99.99", FormatUSD(99.99))
	assert.Equal(t, "$ 1000000.00", FormatUSD(1e6))
}

func TestPrintInsightReport(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r, err := svc.Generate(sampleListings(), InsightOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintInsightReport(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "Number of Listings by RAM Size")
	assert.Contains(t, out, "Price Distribution")
	assert.Contains(t, out, "Average Price of New Laptops by RAM Size")
	assert.Contains(t, out, "Average Price by Release Year")
	assert.Contains(t, out, "$ 460.00")
	assert.Contains(t, out, "2020")
	assert.NotContains(t, out, "2,020")
}

func TestPrintInsightReportEmpty(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r, err := svc.Generate(nil, InsightOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintInsightReport(&buf, r)
	assert.Contains(t, buf.String(), "No price data available")
}
