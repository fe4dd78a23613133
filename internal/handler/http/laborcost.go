package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/laborcost"
	"github.com/shiftpulse/timeclock-backend-go/internal/handler/http/response"
)

type LaborCostHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type laborCostHandlerImpl struct {
	laborCostService laborcost.Service
}

func NewLaborCostHandler(laborCostService laborcost.Service) LaborCostHandler {
	return &laborCostHandlerImpl{
		laborCostService: laborCostService,
	}
}

// monthYearParams reads {year} and {month} from the URL. Range checks live in
// the service validators; this only rejects non-numeric segments.
func monthYearParams(r *http.Request) (month int, year int, ok bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

// Upsert implements LaborCostHandler.
func (h *laborCostHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYearParams(r)
	if !ok {
		response.BadRequest(w, "Year and month must be numeric", nil)
		return
	}

	var req laborcost.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Month = month
	req.Year = year

	result, err := h.laborCostService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Labor cost entry saved", result)
}

// Get implements LaborCostHandler.
func (h *laborCostHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYearParams(r)
	if !ok {
		response.BadRequest(w, "Year and month must be numeric", nil)
		return
	}

	result, err := h.laborCostService.Get(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LaborCostHandler.
func (h *laborCostHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' is required and must be numeric", nil)
		return
	}

	result, err := h.laborCostService.List(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements LaborCostHandler.
func (h *laborCostHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYearParams(r)
	if !ok {
		response.BadRequest(w, "Year and month must be numeric", nil)
		return
	}

	if err := h.laborCostService.Delete(r.Context(), month, year); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Labor cost entry deleted", nil)
}
