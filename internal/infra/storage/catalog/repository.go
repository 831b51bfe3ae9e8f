package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository read access to services and therapists
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID returns a service by id
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "duration_minutes", "base_price", "is_active").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.BasePrice,
		&service.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %w", ErrScanRow, err)
	}

	return &service, nil
}

// GetTherapistByID возвращает мастера по id.
// Внутри транзакции строка блокируется FOR UPDATE, параллельные брони
// одного мастера идут по очереди.
func (r *Repository) GetTherapistByID(ctx context.Context, id int64) (*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "COALESCE(specialty, '')", "is_active").
		From("therapists").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTherapistByID - build select query: %v", ErrBuildQuery, err)
	}

	var therapist domain.Therapist
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&therapist.ID,
		&therapist.Name,
		&therapist.Specialty,
		&therapist.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTherapistNotFound
	}
	if err != nil {
		// lock wait may end in a serialization failure, keep it unwrappable
		return nil, fmt.Errorf("%w: GetTherapistByID - scan therapist: %w", ErrScanRow, err)
	}

	return &therapist, nil
}
