package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository read access to therapist schedule blocks and days off
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetContaining возвращает блоки мастера, целиком содержащие [start, end)
func (r *Repository) GetContaining(ctx context.Context, therapistID int64, start, end time.Time) ([]domain.ScheduleBlock, error) {
	return r.selectBlocks(ctx, "GetContaining",
		squirrel.Eq{"therapist_id": therapistID},
		squirrel.LtOrEq{"start_datetime": start},
		squirrel.GtOrEq{"end_datetime": end},
	)
}

// GetIntersecting returns blocks of the therapist intersecting [from, to), ordered by start
func (r *Repository) GetIntersecting(ctx context.Context, therapistID int64, from, to time.Time) ([]domain.ScheduleBlock, error) {
	return r.selectBlocks(ctx, "GetIntersecting",
		squirrel.Eq{"therapist_id": therapistID},
		squirrel.Lt{"start_datetime": to},
		squirrel.Gt{"end_datetime": from},
	)
}

func (r *Repository) selectBlocks(ctx context.Context, op string, preds ...squirrel.Sqlizer) ([]domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "therapist_id", "start_datetime", "end_datetime", "note").
		From("schedules").
		OrderBy("start_datetime ASC")
	for _, pred := range preds {
		selectBuilder = selectBuilder.Where(pred)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blocks := make([]domain.ScheduleBlock, 0)
	for rows.Next() {
		var block domain.ScheduleBlock
		if err := rows.Scan(&block.ID, &block.TherapistID, &block.Start, &block.End, &block.Note); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return blocks, nil
}

// HasDayOff проверяет, выходной ли у мастера в дату (YYYY-MM-DD)
func (r *Repository) HasDayOff(ctx context.Context, therapistID int64, date string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("therapist_days_off").
		Where(squirrel.Eq{"therapist_id": therapistID}).
		Where(squirrel.Expr("day_off = ?::date", date)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasDayOff - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasDayOff - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetDaysOff returns days off of the therapist between from and to (YYYY-MM-DD, inclusive)
func (r *Repository) GetDaysOff(ctx context.Context, therapistID int64, from, to string) ([]domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "therapist_id", "day_off", "note").
		From("therapist_days_off").
		Where(squirrel.Eq{"therapist_id": therapistID}).
		Where(squirrel.Expr("day_off BETWEEN ?::date AND ?::date", from, to)).
		OrderBy("day_off ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaysOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaysOff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	daysOff := make([]domain.DayOff, 0)
	for rows.Next() {
		var (
			dayOff domain.DayOff
			note   sql.NullString
		)
		if err := rows.Scan(&dayOff.ID, &dayOff.TherapistID, &dayOff.Date, &note); err != nil {
			return nil, fmt.Errorf("%w: GetDaysOff - scan row: %w", ErrScanRow, err)
		}
		if note.Valid {
			dayOff.Note = &note.String
		}
		daysOff = append(daysOff, dayOff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDaysOff - rows error: %w", ErrScanRow, err)
	}

	return daysOff, nil
}
