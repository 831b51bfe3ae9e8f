package pricing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

func TestGetPriceAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	started := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, service_id, price, started_at, ended_at FROM service_prices WHERE service_id = $1 AND started_at <= $2 AND (ended_at IS NULL OR ended_at > $3) ORDER BY started_at DESC LIMIT 1")).
		WithArgs(int64(1), at, at).
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "price", "started_at", "ended_at"}).
			AddRow(int64(2), int64(1), "120.00", started, nil))

	entry, err := NewRepository(db).GetPriceAt(context.Background(), 1, at)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(120).Equal(entry.Price))
	assert.Nil(t, entry.EndedAt)
}

func TestGetPriceAt_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM service_prices`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "price", "started_at", "ended_at"}))

	_, err = NewRepository(db).GetPriceAt(context.Background(), 1, time.Now())
	assert.ErrorIs(t, err, ErrPriceNotFound)
}

func TestGetPriceAt_KeepsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM service_prices`).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

	_, err = NewRepository(db).GetPriceAt(context.Background(), 1, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanRow)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

func TestGetActivePromotion_KeepsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM promotions`).
		WillReturnError(&pq.Error{Code: "40P01", Message: "deadlock detected"})

	_, err = NewRepository(db).GetActivePromotion(context.Background(), "2025-03-10")
	require.Error(t, err)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

func TestGetActivePromotion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM promotions WHERE is_active = $1 AND start_date <= $2::date AND end_date >= $3::date ORDER BY id ASC LIMIT 1")).
		WithArgs(true, "2025-03-10", "2025-03-10").
		WillReturnRows(sqlmock.NewRows(promotionColumns).
			AddRow(int64(4), "Spring", "percent", "10", start, end, true))

	promo, err := NewRepository(db).GetActivePromotion(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountPercent, promo.DiscountType)
	assert.True(t, decimal.NewFromInt(10).Equal(promo.DiscountValue))
}

func TestGetPromotionByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM promotions WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(promotionColumns))

	_, err = NewRepository(db).GetPromotionByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}
