package storage

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"laptop-dashboard/models"
)

// Column headers the dataset must carry. Extra columns are ignored.
const (
	ColItemNumber  = "Item Number"
	ColBrand       = "Brand"
	ColPrice       = "Price"
	ColScreenSize  = "Screen Size"
	ColRamSize     = "Ram Size"
	ColCondition   = "Condition"
	ColReleaseYear = "Release Year"
)

// RequiredColumns lists the headers checked at load time.
var RequiredColumns = []string{
	ColItemNumber, ColBrand, ColPrice, ColScreenSize, ColRamSize, ColCondition, ColReleaseYear,
}

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// CSVSource reads the cleaned listings CSV.
type CSVSource struct {
	path string
}

// NewCSVSource returns a source for the CSV file at path. The file is only
// opened by Load.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads the whole file. Every column is kept as text so that Item
// Number keeps its leading zeros and parsing is left to the cleaner.
func (c *CSVSource) Load(ctx context.Context) ([]*models.RawListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(skipBOM(f),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", c.path, df.Err)
	}

	cols := make(map[string][]string, len(RequiredColumns))
	names := make(map[string]bool)
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, name := range RequiredColumns {
		if !names[name] {
			return nil, fmt.Errorf("csv: %q: %w %q", c.path, ErrMissingColumn, name)
		}
		cols[name] = df.Col(name).Records()
	}

	rows := make([]*models.RawListing, df.Nrow())
	for i := range rows {
		rows[i] = &models.RawListing{
			ItemNumber:  cols[ColItemNumber][i],
			Brand:       cols[ColBrand][i],
			Price:       cols[ColPrice][i],
			ScreenSize:  cols[ColScreenSize][i],
			RamSize:     cols[ColRamSize][i],
			Condition:   cols[ColCondition][i],
			ReleaseYear: cols[ColReleaseYear][i],
		}
	}
	return rows, nil
}

// Close is a no-op; Load closes the file itself.
func (c *CSVSource) Close() error { return nil }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte-order mark, which spreadsheet exports
// often prepend to the header row.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
