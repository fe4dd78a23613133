package laborcost

import (
	"github.com/shopspring/decimal"
)

// percentageScale keeps two implied decimal places of the percent value:
// labor/sales scaled by 10000 stores 25.00% as 2500.
const percentageScale = 10_000

// allLaborNoSales is the sentinel percentage when labor was spent against
// zero sales: 10000.00%.
const allLaborNoSales = 1_000_000

// ToCents converts a major-unit decimal amount to integer minor units,
// rounding half away from zero. All ratio math downstream stays in integers.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ComputePercentage returns the labor-cost percentage at two implied decimal
// places. Zero sales with zero labor is 0; zero sales with any labor pins to
// the sentinel instead of dividing by zero.
func ComputePercentage(salesCents, laborCents int64) int64 {
	if salesCents <= 0 {
		if laborCents > 0 {
			return allLaborNoSales
		}
		return 0
	}
	return decimal.NewFromInt(laborCents).
		Mul(decimal.NewFromInt(percentageScale)).
		Div(decimal.NewFromInt(salesCents)).
		Round(0).
		IntPart()
}

// Classify maps a scaled percentage to its status and rating. Boundaries are
// strict less-than, so exactly 30.00% is already High.
func Classify(percentage int64) (status string, rating string) {
	switch {
	case percentage < 3000:
		return StatusExcellent, RatingGood
	case percentage < 3500:
		return StatusHigh, RatingGood
	case percentage < 4500:
		return StatusHigh, RatingWarning
	case percentage < 5000:
		return StatusPoor, RatingWarning
	default:
		return StatusPoor, RatingCritical
	}
}

// FormatPercentage renders the scaled value with one decimal place for
// display, e.g. 2500 -> "25.0%".
func FormatPercentage(percentage int64) string {
	return decimal.NewFromInt(percentage).
		Div(decimal.NewFromInt(100)).
		StringFixed(1) + "%"
}
