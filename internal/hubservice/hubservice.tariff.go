// FilePath: internal/hubservice/hubservice.tariff.go
package hubservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// TariffService handles the holiday calendar and FT rate settings
type TariffService interface {
	CreateHoliday(ctx context.Context, holiday *models.Holiday) error
	GetHoliday(ctx context.Context, id string) (*models.Holiday, error)
	UpdateHoliday(ctx context.Context, holiday *models.Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context, year int) ([]*models.Holiday, error)
	CreateRate(ctx context.Context, rate *models.RateConfig) error
	GetRate(ctx context.Context, id string) (*models.RateConfig, error)
	UpdateRate(ctx context.Context, rate *models.RateConfig) error
	DeleteRate(ctx context.Context, id string) error
	ListRates(ctx context.Context, offset, limit int) ([]*models.RateConfig, error)
}

// CreateHoliday adds one calendar entry.
func (s *HubService) CreateHoliday(ctx context.Context, holiday *models.Holiday) error {
	if holiday.Name == "" {
		return errors.NewValidationError("holiday name is required", nil)
	}
	if holiday.Date.IsZero() {
		return errors.NewValidationError("holiday date is required", nil)
	}
	if holiday.ID == "" {
		holiday.ID = nuts.NID("hd", 12)
	}
	if holiday.Category == "" {
		holiday.Category = "national"
	}
	now := time.Now()
	holiday.CreatedAt = now
	holiday.UpdatedAt = now

	if err := s.Holidays.Create(ctx, holiday); err != nil {
		return err
	}
	nuts.L.Infof("[TariffService] Created holiday %s (%s)", holiday.Name, holiday.ID)
	s.recordAudit(ctx, "holiday.created", "holiday", holiday.Name)
	return nil
}

// GetHoliday returns one calendar entry.
func (s *HubService) GetHoliday(ctx context.Context, id string) (*models.Holiday, error) {
	return s.Holidays.Get(ctx, id)
}

// UpdateHoliday modifies an existing calendar entry.
func (s *HubService) UpdateHoliday(ctx context.Context, holiday *models.Holiday) error {
	if holiday.ID == "" {
		return errors.NewValidationError("holiday id is required", nil)
	}
	if holiday.Name == "" {
		return errors.NewValidationError("holiday name is required", nil)
	}
	holiday.UpdatedAt = time.Now()

	if err := s.Holidays.Update(ctx, holiday); err != nil {
		return err
	}
	s.recordAudit(ctx, "holiday.updated", "holiday", holiday.Name)
	return nil
}

// DeleteHoliday removes one calendar entry.
func (s *HubService) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.Holidays.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "holiday.deleted", "holiday", id)
	return nil
}

// ListHolidays returns the calendar of one year.
func (s *HubService) ListHolidays(ctx context.Context, year int) ([]*models.Holiday, error) {
	if year < 2000 || year > 2200 {
		return nil, errors.NewValidationError("year is out of range", nil)
	}
	return s.Holidays.ListByYear(ctx, year)
}

// CreateRate adds one FT rate row.
func (s *HubService) CreateRate(ctx context.Context, rate *models.RateConfig) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	if rate.ID == "" {
		rate.ID = nuts.NID("ft", 12)
	}
	now := time.Now()
	rate.CreatedAt = now
	rate.UpdatedAt = now

	if err := s.Rates.Create(ctx, rate); err != nil {
		return err
	}
	nuts.L.Infof("[TariffService] Created FT rate %s (%.2f satang/kWh)", rate.Name, rate.Rate)
	s.recordAudit(ctx, "ft.created", "ft_rate", rate.Name)
	return nil
}

// GetRate returns one FT rate row.
func (s *HubService) GetRate(ctx context.Context, id string) (*models.RateConfig, error) {
	return s.Rates.Get(ctx, id)
}

// UpdateRate modifies an existing FT rate row.
func (s *HubService) UpdateRate(ctx context.Context, rate *models.RateConfig) error {
	if rate.ID == "" {
		return errors.NewValidationError("rate id is required", nil)
	}
	if err := validateRate(rate); err != nil {
		return err
	}
	rate.UpdatedAt = time.Now()

	if err := s.Rates.Update(ctx, rate); err != nil {
		return err
	}
	s.recordAudit(ctx, "ft.updated", "ft_rate", rate.Name)
	return nil
}

// DeleteRate removes one FT rate row.
func (s *HubService) DeleteRate(ctx context.Context, id string) error {
	if err := s.Rates.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "ft.deleted", "ft_rate", id)
	return nil
}

// ListRates returns FT rate rows, newest effective window first.
func (s *HubService) ListRates(ctx context.Context, offset, limit int) ([]*models.RateConfig, error) {
	return s.Rates.List(ctx, offset, limit)
}

func validateRate(rate *models.RateConfig) error {
	if rate.Name == "" {
		return errors.NewValidationError("rate name is required", nil)
	}
	if rate.EffectiveFrom.IsZero() || rate.EffectiveTo.IsZero() {
		return errors.NewValidationError("effective window is required", nil)
	}
	if !rate.EffectiveTo.After(rate.EffectiveFrom) {
		return errors.NewValidationError("effective window must end after it starts", nil)
	}
	return nil
}
