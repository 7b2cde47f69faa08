// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/Kraikuppp/webmeter-hub/internal/database"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// HolidayRepository defines the interface for holiday calendar operations
type HolidayRepository interface {
	database.Repository
	Create(ctx context.Context, holiday *models.Holiday) error
	Get(ctx context.Context, id string) (*models.Holiday, error)
	Update(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id string) error
	ListByYear(ctx context.Context, year int) ([]*models.Holiday, error)
}

// RateConfigRepository defines the interface for FT rate operations
type RateConfigRepository interface {
	database.Repository
	Create(ctx context.Context, rate *models.RateConfig) error
	Get(ctx context.Context, id string) (*models.RateConfig, error)
	Update(ctx context.Context, rate *models.RateConfig) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.RateConfig, error)
}

// EventRepository defines the interface for the audit-event browser
type EventRepository interface {
	database.Repository
	Append(ctx context.Context, event *models.AuditEvent) error
	List(ctx context.Context, filters models.EventFilters) ([]*models.AuditEvent, int, error)
}
