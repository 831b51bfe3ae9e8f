package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

var promotionColumns = []string{
	"id",
	"title",
	"discount_type",
	"discount_value",
	"start_date",
	"end_date",
	"is_active",
}

// Repository read access to service price history and promotions
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPriceAt returns the price history entry in effect at `at`:
// started_at <= at < ended_at (open ended when ended_at is NULL).
// When several entries qualify the latest started_at wins.
func (r *Repository) GetPriceAt(ctx context.Context, serviceID int64, at time.Time) (*domain.PriceHistoryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "service_id", "price", "started_at", "ended_at").
		From("service_prices").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.LtOrEq{"started_at": at}).
		Where(squirrel.Or{
			squirrel.Eq{"ended_at": nil},
			squirrel.Gt{"ended_at": at},
		}).
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPriceAt - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.PriceHistoryEntry
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.ServiceID,
		&entry.Price,
		&entry.StartedAt,
		&entry.EndedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPriceAt - scan price: %w", ErrScanRow, err)
	}

	return &entry, nil
}

// GetActivePromotion returns the first active promotion (lowest id) whose
// date range contains the calendar date (YYYY-MM-DD).
func (r *Repository) GetActivePromotion(ctx context.Context, date string) (*domain.Promotion, error) {
	query, args, err := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Expr("start_date <= ?::date", date)).
		Where(squirrel.Expr("end_date >= ?::date", date)).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActivePromotion - build select query: %v", ErrBuildQuery, err)
	}

	return r.getPromotion(ctx, "GetActivePromotion", query, args)
}

// GetPromotionByID returns a promotion regardless of its active flag and dates
func (r *Repository) GetPromotionByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	query, args, err := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPromotionByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.getPromotion(ctx, "GetPromotionByID", query, args)
}

func (r *Repository) getPromotion(ctx context.Context, op, query string, args []interface{}) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var promo domain.Promotion
	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&promo.ID,
		&promo.Title,
		&promo.DiscountType,
		&promo.DiscountValue,
		&promo.StartDate,
		&promo.EndDate,
		&promo.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promotion: %w", ErrScanRow, op, err)
	}

	return &promo, nil
}
