package response

import (
	"errors"
	"net/http"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/laborcost"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Punch state machine conflicts
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "Already on break")
	case errors.Is(err, attendance.ErrNoActiveBreak):
		Conflict(w, "No active break")
	case errors.Is(err, attendance.ErrBreakInProgress):
		Conflict(w, "Break still in progress, end it before clocking out")

	// Lookups
	case errors.Is(err, laborcost.ErrEntryNotFound):
		NotFound(w, "Labor cost entry not found")

	// Access
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "You are not allowed to access this resource")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
