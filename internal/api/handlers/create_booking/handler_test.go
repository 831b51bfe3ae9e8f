package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	createBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
)

var ict = time.FixedZone("ICT", 7*60*60)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{
	"customerName": "Somchai",
	"customerPhone": "0812345678",
	"serviceId": 1,
	"therapistId": 7,
	"bookingTime": "2025-07-05T10:00:00+07:00"
}`

func serve(uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, ict, memstore.Logger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 7, 5, 3, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		BookingID:   57,
		Reference:   "BK-250704-57",
		ServiceID:   1,
		TherapistID: 7,
		BookingTime: start,
		EndTime:     start.Add(time.Hour),
		Status:      "pending",
		Price:       decimal.RequireFromString("850"),
		BasePrice:   decimal.RequireFromString("1000"),
		CreatedAt:   start.Add(-24 * time.Hour),
	}}

	rec := serve(uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.True(t, uc.got.BookingTime.Equal(start))
	assert.Equal(t, "Somchai", uc.got.CustomerName)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(57), body.BookingID)
	assert.Equal(t, "BK-250704-57", body.Reference)
	assert.Equal(t, "850.00", body.Price)
	assert.Equal(t, "1000.00", body.BasePrice)
	assert.Equal(t, "2025-07-05T10:00:00+07:00", body.BookingTime)
	assert.Equal(t, "2025-07-05T11:00:00+07:00", body.EndTime)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"unknown field", `{"customerName":"Somchai","car":"red"}`},
		{"short phone", strings.Replace(validBody, "0812345678", "08123", 1)},
		{"missing therapist", strings.Replace(validBody, `"therapistId": 7,`, "", 1)},
		{"bad time", strings.Replace(validBody, "2025-07-05T10:00:00+07:00", "2025-07-05 10:00", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got, "use case must not be called")
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{createBooking.ErrServiceNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{createBooking.ErrTherapistNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{createBooking.ErrPromotionNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{createBooking.ErrServiceInactive, http.StatusUnprocessableEntity, handlers.CodeInactiveResource},
		{createBooking.ErrTherapistInactive, http.StatusUnprocessableEntity, handlers.CodeInactiveResource},
		{fmt.Errorf("%w: from 2025-07-02", createBooking.ErrOutOfWindow), http.StatusBadRequest, handlers.CodeOutOfWindow},
		{createBooking.ErrSlotNotAvailable, http.StatusConflict, handlers.CodeSlotUnavailable},
		{createBooking.ErrBookingConflict, http.StatusConflict, handlers.CodeConflict},
		{createBooking.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidInput},
		{fmt.Errorf("%w: db down", createBooking.ErrInternal), http.StatusInternalServerError, handlers.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, validBody)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
