// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/config"
	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
	"github.com/Kraikuppp/webmeter-hub/internal/repository"
	"github.com/Kraikuppp/webmeter-hub/internal/view"
)

// MeterAPI is the upstream client surface the service depends on.
type MeterAPI interface {
	FetchReadings(ctx context.Context, q models.ReadingQuery) ([]models.Reading, error)
	FetchLatest(ctx context.Context, meterID string) (*models.Reading, error)
	FetchGroups(ctx context.Context) (*models.Groups, error)
	SendReport(ctx context.Context, target models.DeliveryTarget, format models.ExportFormat, payload *models.ReportPayload) error
}

// DataCache is the short-lived result cache in front of the meter API.
// A nil DataCache disables caching entirely.
type DataCache interface {
	GetReadings(ctx context.Context, key string) ([]models.Reading, bool)
	SetReadings(ctx context.Context, key string, readings []models.Reading)
	GetSnapshot(ctx context.Context, meterID string) (*models.Reading, bool)
	SetSnapshot(ctx context.Context, meterID string, reading *models.Reading)
}

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Meters   MeterAPI
	Cache    DataCache
	Views    *view.Manager
	Holidays repository.HolidayRepository
	Rates    repository.RateConfigRepository
	Events   repository.EventRepository

	cfg    config.DashboardConfig
	events *nuts.EventEmitter
}

// New creates a new HubService instance
func New(
	meters MeterAPI,
	cache DataCache,
	holidays repository.HolidayRepository,
	rates repository.RateConfigRepository,
	events repository.EventRepository,
	cfg config.DashboardConfig,
) *HubService {
	return &HubService{
		Meters:   meters,
		Cache:    cache,
		Views:    view.NewManager(cfg.DefaultPageSize, cfg.PollInterval),
		Holidays: holidays,
		Rates:    rates,
		Events:   events,
		cfg:      cfg,
		events:   nuts.NewEventEmitter(),
	}
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Meters == nil {
		return ErrMissingDependency("meter API client")
	}
	if s.Views == nil {
		return ErrMissingDependency("view manager")
	}
	if s.Holidays == nil {
		return ErrMissingDependency("holidays repository")
	}
	if s.Rates == nil {
		return ErrMissingDependency("rates repository")
	}
	if s.Events == nil {
		return ErrMissingDependency("events repository")
	}
	return nil
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}

// Close tears down every live view session.
func (s *HubService) Close() {
	s.Views.CloseAll()
}

// OnAudit registers a callback for audit events, keyed by action name.
func (s *HubService) OnAudit(action string, handler func(event *models.AuditEvent)) {
	s.events.On(action, "audit_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if ev, ok := args[0].(*models.AuditEvent); ok {
				handler(ev)
			}
		}
	})
}

// recordAudit persists one dashboard action and emits it to registered
// handlers. Audit failures are logged, never surfaced to the caller.
func (s *HubService) recordAudit(ctx context.Context, action, resource, detail string) {
	event := &models.AuditEvent{
		ID:        nuts.NID("ev", 12),
		Action:    action,
		Resource:  resource,
		Detail:    detail,
		Actor:     GetUserID(ctx),
		CreatedAt: time.Now(),
	}
	if err := s.Events.Append(ctx, event); err != nil {
		nuts.L.Warnf("[HubService] Failed to persist audit event %s: %v", action, err)
	}
	s.events.Emit(action, event)
}

// GetUserID retrieves the authenticated user id from context
// This should be implemented based on your authentication system
func GetUserID(ctx context.Context) string {
	if id := ctx.Value("user_id"); id != nil {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "anonymous"
}
