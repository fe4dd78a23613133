package laborcost

import (
	"time"
)

// Status buckets shown on the report. Derived from the fixed-point
// percentage, never stored independently of it.
const (
	StatusExcellent = "Excellent"
	StatusHigh      = "High"
	StatusPoor      = "Poor"
)

// Performance ratings drive the badge color on the dashboard.
const (
	RatingGood     = "good"
	RatingWarning  = "warning"
	RatingCritical = "critical"
)

// Entry is one monthly sales-vs-labor row, independent of attendance records.
// Money lives in integer minor units (centavos) end to end; the percentage is
// the percent value scaled by 100, so 2500 renders as "25.00%".
type Entry struct {
	ID                  string
	Month               int
	Year                int
	TotalSalesCents     int64
	TotalLaborCostCents int64
	LaborCostPercentage int64
	Status              string
	PerformanceRating   string
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
