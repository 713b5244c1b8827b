package storage

import (
	"context"

	"laptop-dashboard/models"
)

// ListingSource is the interface any dataset backend must satisfy.
// Sources are read-only: they deliver raw rows in their stored order.
type ListingSource interface {
	Load(ctx context.Context) ([]*models.RawListing, error)
	Close() error
}
