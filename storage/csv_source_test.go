package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	path := writeCSV(t, "Item Number,Brand,Price,Screen Size,Ram Size,Condition,Release Year,Seller\n"+
		"0123456789,Dell,249.99,15.6,8 GB,Used,2019,acme\n"+
		"987654321012,Apple,1099,13.3,16 GB,New,unknown,bob\n")

	rows, err := NewCSVSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "0123456789", rows[0].ItemNumber, "item numbers stay text")
	assert.Equal(t, "Dell", rows[0].Brand)
	assert.Equal(t, "249.99", rows[0].Price)
	assert.Equal(t, "15.6", rows[0].ScreenSize)
	assert.Equal(t, "8 GB", rows[0].RamSize)
	assert.Equal(t, "Used", rows[0].Condition)
	assert.Equal(t, "2019", rows[0].ReleaseYear)

	assert.Equal(t, "Apple", rows[1].Brand)
	assert.Equal(t, "unknown", rows[1].ReleaseYear)
}

func TestCSVSourceSkipsByteOrderMark(t *testing.T) {
	path := writeCSV(t, "\ufeffItem Number,Brand,Price,Screen Size,Ram Size,Condition,Release Year\n"+
		"42,Lenovo,300,14,8 GB,New,2021\n")

	rows, err := NewCSVSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "42", rows[0].ItemNumber)
	assert.Equal(t, "Lenovo", rows[0].Brand)
}

func TestCSVSourceMissingColumn(t *testing.T) {
	path := writeCSV(t, "Item Number,Brand,Price,Screen Size,Ram Size,Condition\n"+
		"1,Dell,100,14,8 GB,New\n")

	_, err := NewCSVSource(path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColReleaseYear)
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv")).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCSVSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCSVSource("unused.csv").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectQueryQuotesTable(t *testing.T) {
	q := selectQuery(`ebay"laptops`)
	assert.Contains(t, q, `FROM "ebay""laptops"`)
	assert.Contains(t, q, "ORDER BY id")
}
