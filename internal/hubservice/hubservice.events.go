// FilePath: internal/hubservice/hubservice.events.go
package hubservice

import (
	"context"

	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// EventPage is one page of the system events browser plus its totals.
type EventPage struct {
	Events   []*models.AuditEvent `json:"events"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// ListEvents returns one filtered, sorted page of audit events.
func (s *HubService) ListEvents(ctx context.Context, filters models.EventFilters) (*EventPage, error) {
	events, total, err := s.Events.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	return &EventPage{
		Events:   events,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
