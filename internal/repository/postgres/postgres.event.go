// FilePath: internal/repository/postgres/postgres.event.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kraikuppp/webmeter-hub/internal/database"
	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

type EventRepo struct {
	PostgresBaseRepo
}

func NewEventRepository(db database.DB) (*EventRepo, error) {
	repo := &EventRepo{PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *EventRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS audit_events (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			resource TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			actor TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_events_created_at
		 ON audit_events(created_at DESC)`,
	}
	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize audit_events schema", err)
		}
	}
	return nil
}

func (r *EventRepo) Append(ctx context.Context, event *models.AuditEvent) error {
	query := `
		INSERT INTO audit_events (id, action, resource, detail, actor, created_at)
		VALUES (:id, :action, :resource, :detail, :actor, :created_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, event)
	if err != nil {
		return errors.NewDatabaseError("failed to append audit event", err)
	}
	return nil
}

// sortColumns whitelists sortable columns so filter input can never
// reach the query as raw SQL.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"action":     "action",
	"resource":   "resource",
	"actor":      "actor",
}

// List returns one page of audit events plus the total match count.
func (r *EventRepo) List(ctx context.Context, filters models.EventFilters) ([]*models.AuditEvent, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addFilter("action", filters.Action)
	addFilter("resource", filters.Resource)
	addFilter("actor", filters.Actor)

	tr := filters.Range()
	if tr.Start != nil {
		args = append(args, *tr.Start)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if tr.End != nil {
		args = append(args, *tr.End)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM audit_events WHERE " + whereClause
	if err := r.db.GetDB().GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to count audit events", err)
	}

	sortBy, ok := sortColumns[filters.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortDir := "DESC"
	if strings.EqualFold(filters.SortDir, "asc") {
		sortDir = "ASC"
	}

	pageSize := filters.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	args = append(args, pageSize, (page-1)*pageSize)

	query := fmt.Sprintf(
		"SELECT * FROM audit_events WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, sortBy, sortDir, len(args)-1, len(args),
	)

	events := []*models.AuditEvent{}
	if err := r.db.GetDB().SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, errors.NewDatabaseError("failed to list audit events", err)
	}
	return events, total, nil
}
