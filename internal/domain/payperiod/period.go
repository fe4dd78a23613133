package payperiod

import (
	"time"

	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

// Period is the half-month window used for attendance queries and payslips.
// Half 1 covers days 1-15, half 2 covers day 16 through the end of the month.
type Period struct {
	Year  int
	Month time.Month
	Half  int
	Start time.Time
	End   time.Time
}

// Resolve returns the pay period containing referenceDate for the given half.
// Boundaries are wall-clock instants in referenceDate's location: the start
// at 00:00:00.000 and the end at 23:59:59.999.
func Resolve(referenceDate time.Time, half int) Period {
	year, month, _ := referenceDate.Date()
	loc := referenceDate.Location()

	var start, end time.Time
	if half == 1 {
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		end = time.Date(year, month, 15, 23, 59, 59, 999_000_000, loc)
	} else {
		start = time.Date(year, month, 16, 0, 0, 0, 0, loc)
		// Day 0 of the next month normalizes to the last day of this one,
		// landing on 28, 29, 30, or 31 without a lookup table.
		lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
		end = time.Date(year, month, lastDay, 23, 59, 59, 999_000_000, loc)
	}

	return Period{
		Year:  year,
		Month: month,
		Half:  half,
		Start: start,
		End:   end,
	}
}

// DefaultHalf picks the half containing date, used to auto-select the active
// period when a view opens on "today".
func DefaultHalf(date time.Time) int {
	if date.Day() <= 15 {
		return 1
	}
	return 2
}

// Response is the wire shape consumed by reporting views.
type Response struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Half  int    `json:"half"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (p Period) ToResponse() Response {
	return Response{
		Year:  p.Year,
		Month: int(p.Month),
		Half:  p.Half,
		Start: p.Start.Format("2006-01-02 15:04:05.000"),
		End:   p.End.Format("2006-01-02 15:04:05.000"),
	}
}

// Request carries the resolver query parameters.
type Request struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
	Half int    `json:"half"` // 1 or 2, defaults per DefaultHalf
}

func (r *Request) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Half != 0 && r.Half != 1 && r.Half != 2 {
		errs = append(errs, validator.ValidationError{
			Field:   "half",
			Message: "half must be 1 or 2",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
