// FilePath: internal/repository/postgres/postgres.rateconfig.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/Kraikuppp/webmeter-hub/internal/database"
	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

type RateConfigRepo struct {
	PostgresBaseRepo
}

func NewRateConfigRepository(db database.DB) (*RateConfigRepo, error) {
	repo := &RateConfigRepo{PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *RateConfigRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS ft_rates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			rate DOUBLE PRECISION NOT NULL,
			effective_from TIMESTAMPTZ NOT NULL,
			effective_to TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize ft_rates schema", err)
	}
	return nil
}

func (r *RateConfigRepo) Create(ctx context.Context, rate *models.RateConfig) error {
	query := `
		INSERT INTO ft_rates (id, name, rate, effective_from, effective_to, created_at, updated_at)
		VALUES (:id, :name, :rate, :effective_from, :effective_to, :created_at, :updated_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, rate)
	if err != nil {
		return errors.NewDatabaseError("failed to create FT rate", err)
	}
	return nil
}

func (r *RateConfigRepo) Get(ctx context.Context, id string) (*models.RateConfig, error) {
	rate := &models.RateConfig{}
	query := `SELECT * FROM ft_rates WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, rate, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("FT rate not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get FT rate", err)
	}
	return rate, nil
}

func (r *RateConfigRepo) Update(ctx context.Context, rate *models.RateConfig) error {
	query := `
		UPDATE ft_rates SET
			name = :name,
			rate = :rate,
			effective_from = :effective_from,
			effective_to = :effective_to,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, rate)
	if err != nil {
		return errors.NewDatabaseError("failed to update FT rate", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("FT rate not found", nil)
	}
	return nil
}

func (r *RateConfigRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM ft_rates WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete FT rate", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("FT rate not found", nil)
	}
	return nil
}

func (r *RateConfigRepo) List(ctx context.Context, offset, limit int) ([]*models.RateConfig, error) {
	rates := []*models.RateConfig{}
	query := `SELECT * FROM ft_rates ORDER BY effective_from DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &rates, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list FT rates", err)
	}
	return rates, nil
}
