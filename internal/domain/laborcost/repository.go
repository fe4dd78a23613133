package laborcost

import (
	"context"
)

// Repository defines data access for monthly labor cost entries.
type Repository interface {
	// Upsert inserts or replaces the entry for (month, year).
	Upsert(ctx context.Context, entry Entry) (Entry, error)

	// GetByMonthYear returns the entry or ErrEntryNotFound.
	GetByMonthYear(ctx context.Context, month int, year int) (Entry, error)

	// ListByYear returns all entries for a year ordered by month.
	ListByYear(ctx context.Context, year int) ([]Entry, error)

	// Delete removes the entry or returns ErrEntryNotFound.
	Delete(ctx context.Context, month int, year int) error
}
