// FilePath: internal/repository/postgres/postgres.holiday.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/Kraikuppp/webmeter-hub/internal/database"
	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

type HolidayRepo struct {
	PostgresBaseRepo
}

func NewHolidayRepository(db database.DB) (*HolidayRepo, error) {
	repo := &HolidayRepo{PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *HolidayRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS holidays (
			id TEXT PRIMARY KEY,
			date DATE NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'national',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize holidays schema", err)
	}
	return nil
}

func (r *HolidayRepo) Create(ctx context.Context, holiday *models.Holiday) error {
	query := `
		INSERT INTO holidays (id, date, name, category, created_at, updated_at)
		VALUES (:id, :date, :name, :category, :created_at, :updated_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, holiday)
	if err != nil {
		return errors.NewDatabaseError("failed to create holiday", err)
	}
	return nil
}

func (r *HolidayRepo) Get(ctx context.Context, id string) (*models.Holiday, error) {
	holiday := &models.Holiday{}
	query := `SELECT * FROM holidays WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, holiday, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("holiday not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get holiday", err)
	}
	return holiday, nil
}

func (r *HolidayRepo) Update(ctx context.Context, holiday *models.Holiday) error {
	query := `
		UPDATE holidays SET
			date = :date,
			name = :name,
			category = :category,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, holiday)
	if err != nil {
		return errors.NewDatabaseError("failed to update holiday", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("holiday not found", nil)
	}
	return nil
}

func (r *HolidayRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM holidays WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete holiday", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("holiday not found", nil)
	}
	return nil
}

func (r *HolidayRepo) ListByYear(ctx context.Context, year int) ([]*models.Holiday, error) {
	holidays := []*models.Holiday{}
	query := `
		SELECT * FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date ASC`

	err := r.db.GetDB().SelectContext(ctx, &holidays, query, year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list holidays", err)
	}
	return holidays, nil
}
