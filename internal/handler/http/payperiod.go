package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftpulse/timeclock-backend-go/internal/handler/http/response"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/clock"
)

type PayPeriodHandler interface {
	Resolve(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	clock clock.Clock
}

func NewPayPeriodHandler(clk clock.Clock) PayPeriodHandler {
	return &payPeriodHandlerImpl{clock: clk}
}

// Resolve implements PayPeriodHandler. Date defaults to today and half to the
// half-month containing the date.
func (h *payPeriodHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	req := payperiod.Request{
		Date: r.URL.Query().Get("date"),
	}
	if half := r.URL.Query().Get("half"); half != "" {
		n, err := strconv.Atoi(half)
		if err != nil {
			response.BadRequest(w, "Query parameter 'half' must be numeric", nil)
			return
		}
		req.Half = n
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	referenceDate := h.clock.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, referenceDate.Location())
		if err != nil {
			response.BadRequest(w, "Query parameter 'date' must be in YYYY-MM-DD format", nil)
			return
		}
		referenceDate = parsed
	}

	half := req.Half
	if half == 0 {
		half = payperiod.DefaultHalf(referenceDate)
	}

	period := payperiod.Resolve(referenceDate, half)
	response.Success(w, period.ToResponse())
}
