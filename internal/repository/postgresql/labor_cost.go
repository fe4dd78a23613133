package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/laborcost"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
)

type laborCostRepository struct {
	db *database.DB
}

func NewLaborCostRepository(db *database.DB) laborcost.Repository {
	return &laborCostRepository{db: db}
}

const laborCostColumns = `
	id, month, year, total_sales_cents, total_labor_cost_cents,
	labor_cost_percentage, status, performance_rating, notes,
	created_at, updated_at
`

func scanLaborCost(row pgx.Row) (laborcost.Entry, error) {
	var e laborcost.Entry
	err := row.Scan(
		&e.ID, &e.Month, &e.Year, &e.TotalSalesCents, &e.TotalLaborCostCents,
		&e.LaborCostPercentage, &e.Status, &e.PerformanceRating, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Upsert implements laborcost.Repository.
func (l *laborCostRepository) Upsert(ctx context.Context, entry laborcost.Entry) (laborcost.Entry, error) {
	q := database.GetQuerier(ctx, l.db)

	query := `
		INSERT INTO monthly_labor_costs (
			id, month, year, total_sales_cents, total_labor_cost_cents,
			labor_cost_percentage, status, performance_rating, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (year, month) DO UPDATE SET
			total_sales_cents = EXCLUDED.total_sales_cents,
			total_labor_cost_cents = EXCLUDED.total_labor_cost_cents,
			labor_cost_percentage = EXCLUDED.labor_cost_percentage,
			status = EXCLUDED.status,
			performance_rating = EXCLUDED.performance_rating,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING ` + laborCostColumns + `
	`

	saved, err := scanLaborCost(q.QueryRow(ctx, query,
		uuid.NewString(),
		entry.Month,
		entry.Year,
		entry.TotalSalesCents,
		entry.TotalLaborCostCents,
		entry.LaborCostPercentage,
		entry.Status,
		entry.PerformanceRating,
		entry.Notes,
	))
	if err != nil {
		return laborcost.Entry{}, fmt.Errorf("failed to upsert labor cost entry: %w", err)
	}

	return saved, nil
}

// GetByMonthYear implements laborcost.Repository.
func (l *laborCostRepository) GetByMonthYear(ctx context.Context, month int, year int) (laborcost.Entry, error) {
	q := database.GetQuerier(ctx, l.db)

	query := `
		SELECT ` + laborCostColumns + `
		FROM monthly_labor_costs
		WHERE month = $1 AND year = $2
	`

	entry, err := scanLaborCost(q.QueryRow(ctx, query, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return laborcost.Entry{}, laborcost.ErrEntryNotFound
		}
		return laborcost.Entry{}, fmt.Errorf("failed to get labor cost entry: %w", err)
	}

	return entry, nil
}

// ListByYear implements laborcost.Repository.
func (l *laborCostRepository) ListByYear(ctx context.Context, year int) ([]laborcost.Entry, error) {
	q := database.GetQuerier(ctx, l.db)

	query := `
		SELECT ` + laborCostColumns + `
		FROM monthly_labor_costs
		WHERE year = $1
		ORDER BY month ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query labor cost entries: %w", err)
	}
	defer rows.Close()

	var entries []laborcost.Entry
	for rows.Next() {
		entry, err := scanLaborCost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan labor cost entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Delete implements laborcost.Repository.
func (l *laborCostRepository) Delete(ctx context.Context, month int, year int) error {
	q := database.GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM monthly_labor_costs WHERE month = $1 AND year = $2`, month, year)
	if err != nil {
		return fmt.Errorf("failed to delete labor cost entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return laborcost.ErrEntryNotFound
	}

	return nil
}
