package laborcost

import (
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// LABOR COST DTOs
// ========================================

// UpsertRequest carries the monthly figures as major-unit decimal strings
// straight from the form. Conversion to centavos happens once, here, so no
// float ever touches the ratio.
type UpsertRequest struct {
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	TotalSales     string  `json:"total_sales"`
	TotalLaborCost string  `json:"total_labor_cost"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of the supported reporting range",
		})
	}

	// The money regex rejects negatives and sub-centavo fractions outright.
	if validator.IsEmpty(r.TotalSales) {
		errs = append(errs, validator.ValidationError{
			Field:   "total_sales",
			Message: "total_sales is required",
		})
	} else if !validator.IsValidMoneyAmount(r.TotalSales) {
		errs = append(errs, validator.ValidationError{
			Field:   "total_sales",
			Message: "total_sales must be a non-negative amount with at most two decimal places",
		})
	}

	if validator.IsEmpty(r.TotalLaborCost) {
		errs = append(errs, validator.ValidationError{
			Field:   "total_labor_cost",
			Message: "total_labor_cost is required",
		})
	} else if !validator.IsValidMoneyAmount(r.TotalLaborCost) {
		errs = append(errs, validator.ValidationError{
			Field:   "total_labor_cost",
			Message: "total_labor_cost must be a non-negative amount with at most two decimal places",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Amounts parses the validated form strings into major-unit decimals.
func (r *UpsertRequest) Amounts() (sales decimal.Decimal, labor decimal.Decimal, err error) {
	sales, err = decimal.NewFromString(r.TotalSales)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	labor, err = decimal.NewFromString(r.TotalLaborCost)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return sales, labor, nil
}

type EntryResponse struct {
	ID                  string  `json:"id"`
	Month               int     `json:"month"`
	Year                int     `json:"year"`
	TotalSalesCents     int64   `json:"total_sales_cents"`
	TotalLaborCostCents int64   `json:"total_labor_cost_cents"`
	LaborCostPercentage int64   `json:"labor_cost_percentage"`
	PercentageDisplay   string  `json:"percentage_display"`
	Status              string  `json:"status"`
	PerformanceRating   string  `json:"performance_rating"`
	Notes               *string `json:"notes,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type ListResponse struct {
	Year    int             `json:"year"`
	Entries []EntryResponse `json:"entries"`
}
