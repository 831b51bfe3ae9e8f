package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

func TestGetServiceByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, duration_minutes, base_price, is_active FROM services WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes", "base_price", "is_active"}).
			AddRow(int64(1), "Thai massage", 60, "100.00", true))

	service, err := NewRepository(db).GetServiceByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 60, service.DurationMinutes)
	assert.True(t, decimal.NewFromInt(100).Equal(service.BasePrice))
	assert.True(t, service.IsActive)
}

func TestGetServiceByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM services`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes", "base_price", "is_active"}))

	_, err = NewRepository(db).GetServiceByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetServiceByID_KeepsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM services`).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

	_, err = NewRepository(db).GetServiceByID(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanRow)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

func TestGetTherapistByID_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM therapists WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty", "is_active"}).
			AddRow(int64(2), "Mali", "Thai", true))
	mock.ExpectCommit()

	wrapped := dbmetrics.Wrap(db, nil)
	ctx := context.Background()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	therapist, err := NewRepository(wrapped).GetTherapistByID(dbmetrics.WithTx(ctx, tx), 2)
	require.NoError(t, err)
	assert.Equal(t, "Mali", therapist.Name)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTherapistByID_NoLockOutsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, COALESCE(specialty, ''), is_active FROM therapists WHERE id = $1").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty", "is_active"}))

	_, err = NewRepository(db).GetTherapistByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrTherapistNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
