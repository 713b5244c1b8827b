package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptop-dashboard/config"
	"laptop-dashboard/models"
	"laptop-dashboard/utils"
)

const fixtureCSV = `Item Number,Brand,Price,Screen Size,Ram Size,Condition,Release Year
100200300,Dell,100,14,8 GB,New,2020
100200301,Dell,200,15.6,8 GB,New,2019
100200302,HP,400,13.3,16 GB,New,unknown
100200303,HP,80,17.3,4 GB,Used,2005
`

func useFixture(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cleaned_Ebay_Data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg = config.Default()
	cfg.DatasetPath = path
	logger = utils.NewNopLogger()
}

func TestLoadDatasetFromCSV(t *testing.T) {
	useFixture(t, fixtureCSV)

	ds, err := loadDataset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"Dell", "HP"}, ds.Brands())
	assert.Equal(t, models.Range{Min: 80, Max: 400}, ds.PriceBounds())
}

func TestLoadDatasetMissingFileIsFatal(t *testing.T) {
	cfg = config.Default()
	cfg.DatasetPath = filepath.Join(t.TempDir(), "missing.csv")
	logger = utils.NewNopLogger()

	_, err := loadDataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dataset")
}

func TestLoadDatasetRejectsBadPrice(t *testing.T) {
	useFixture(t, "Item Number,Brand,Price,Screen Size,Ram Size,Condition,Release Year\n"+
		"1,Dell,,14,8 GB,New,2020\n")

	_, err := loadDataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dataset")
}

func TestReportJSON(t *testing.T) {
	useFixture(t, fixtureCSV)
	reportJSON, reportNewOnly = true, false
	t.Cleanup(func() { reportJSON = false })
	reportCmd.SetContext(context.Background())

	out := captureStdout(t, func() {
		require.NoError(t, runReport(reportCmd, nil))
	})

	var report models.InsightReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.TotalListings)
	assert.Equal(t, []models.GroupMean{
		{Label: "8 GB", Mean: 150, Count: 2},
		{Label: "16 GB", Mean: 400, Count: 1},
	}, report.MeanPriceByRam)
	require.Len(t, report.MeanPriceByYear, 2)
	assert.Equal(t, "2019", report.MeanPriceByYear[0].Label)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = orig
	return <-done
}
