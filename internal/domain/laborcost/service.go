package laborcost

import (
	"context"
)

// Service defines business logic for monthly labor cost reporting.
type Service interface {
	// Upsert validates the figures, derives percentage and classification,
	// and stores the entry for (month, year).
	Upsert(ctx context.Context, req UpsertRequest) (EntryResponse, error)

	// Get returns the entry for (month, year).
	Get(ctx context.Context, month int, year int) (EntryResponse, error)

	// List returns a year's entries ordered by month.
	List(ctx context.Context, year int) (ListResponse, error)

	// Delete removes the entry for (month, year).
	Delete(ctx context.Context, month int, year int) error
}
