package laborcost

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/laborcost"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	laborcost.Repository
}

func NewLaborCostService(repo laborcost.Repository) laborcost.Service {
	return &ServiceImpl{Repository: repo}
}

// Upsert implements laborcost.Service.
func (s *ServiceImpl) Upsert(ctx context.Context, req laborcost.UpsertRequest) (laborcost.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return laborcost.EntryResponse{}, err
	}

	sales, labor, err := req.Amounts()
	if err != nil {
		return laborcost.EntryResponse{}, fmt.Errorf("failed to parse amounts: %w", err)
	}

	salesCents := laborcost.ToCents(sales)
	laborCents := laborcost.ToCents(labor)
	percentage := laborcost.ComputePercentage(salesCents, laborCents)
	status, rating := laborcost.Classify(percentage)

	entry := laborcost.Entry{
		Month:               req.Month,
		Year:                req.Year,
		TotalSalesCents:     salesCents,
		TotalLaborCostCents: laborCents,
		LaborCostPercentage: percentage,
		Status:              status,
		PerformanceRating:   rating,
		Notes:               req.Notes,
	}

	saved, err := s.Repository.Upsert(ctx, entry)
	if err != nil {
		return laborcost.EntryResponse{}, fmt.Errorf("failed to upsert labor cost entry: %w", err)
	}

	return toEntryResponse(saved), nil
}

// Get implements laborcost.Service.
func (s *ServiceImpl) Get(ctx context.Context, month int, year int) (laborcost.EntryResponse, error) {
	if err := validateMonthYear(month, year); err != nil {
		return laborcost.EntryResponse{}, err
	}

	entry, err := s.Repository.GetByMonthYear(ctx, month, year)
	if err != nil {
		if errors.Is(err, laborcost.ErrEntryNotFound) {
			return laborcost.EntryResponse{}, laborcost.ErrEntryNotFound
		}
		return laborcost.EntryResponse{}, fmt.Errorf("failed to get labor cost entry: %w", err)
	}

	return toEntryResponse(entry), nil
}

// List implements laborcost.Service.
func (s *ServiceImpl) List(ctx context.Context, year int) (laborcost.ListResponse, error) {
	if !validator.IsValidYear(year) {
		return laborcost.ListResponse{}, validator.ValidationErrors{{
			Field:   "year",
			Message: "year is out of the supported reporting range",
		}}
	}

	entries, err := s.Repository.ListByYear(ctx, year)
	if err != nil {
		return laborcost.ListResponse{}, fmt.Errorf("failed to list labor cost entries: %w", err)
	}

	responses := make([]laborcost.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toEntryResponse(entry))
	}

	return laborcost.ListResponse{
		Year:    year,
		Entries: responses,
	}, nil
}

// Delete implements laborcost.Service.
func (s *ServiceImpl) Delete(ctx context.Context, month int, year int) error {
	if err := validateMonthYear(month, year); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, month, year); err != nil {
		if errors.Is(err, laborcost.ErrEntryNotFound) {
			return laborcost.ErrEntryNotFound
		}
		return fmt.Errorf("failed to delete labor cost entry: %w", err)
	}
	return nil
}

func validateMonthYear(month int, year int) error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of the supported reporting range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func toEntryResponse(entry laborcost.Entry) laborcost.EntryResponse {
	return laborcost.EntryResponse{
		ID:                  entry.ID,
		Month:               entry.Month,
		Year:                entry.Year,
		TotalSalesCents:     entry.TotalSalesCents,
		TotalLaborCostCents: entry.TotalLaborCostCents,
		LaborCostPercentage: entry.LaborCostPercentage,
		PercentageDisplay:   laborcost.FormatPercentage(entry.LaborCostPercentage),
		Status:              entry.Status,
		PerformanceRating:   entry.PerformanceRating,
		Notes:               entry.Notes,
		CreatedAt:           entry.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:           entry.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
