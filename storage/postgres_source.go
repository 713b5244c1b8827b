package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"laptop-dashboard/models"
	"laptop-dashboard/utils"
)

// PostgresSource reads listings from a PostgreSQL table. It never writes.
type PostgresSource struct {
	db    *sql.DB
	table string
}

// NewPostgresSource opens a connection and waits for the server with the
// given retry policy.
func NewPostgresSource(ctx context.Context, dsn, table string, retry *utils.RetryConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = retry.Do(ctx, "postgres-ping", func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresSource{db: db, table: table}, nil
}

// selectQuery builds the read query. Every column is cast to text so rows
// follow the same parsing path as the CSV source.
func selectQuery(table string) string {
	return fmt.Sprintf(`
		SELECT item_number::text, brand::text, price::text, screen_size::text,
		       ram_size::text, condition::text, release_year::text
		FROM %s
		ORDER BY id
	`, pq.QuoteIdentifier(table))
}

// Load retrieves all stored listings in insertion order.
func (p *PostgresSource) Load(ctx context.Context) ([]*models.RawListing, error) {
	rows, err := p.db.QueryContext(ctx, selectQuery(p.table))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.RawListing
	for rows.Next() {
		var item, brand, price, screen, ram, cond, year sql.NullString
		if err := rows.Scan(&item, &brand, &price, &screen, &ram, &cond, &year); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, &models.RawListing{
			ItemNumber:  item.String,
			Brand:       brand.String,
			Price:       price.String,
			ScreenSize:  screen.String,
			RamSize:     ram.String,
			Condition:   cond.String,
			ReleaseYear: year.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate rows: %w", err)
	}
	return listings, nil
}

func (p *PostgresSource) Close() error {
	return p.db.Close()
}
