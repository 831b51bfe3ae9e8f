package get_available_dates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	getAvailableDates "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_dates"
)

type fakeUseCase struct {
	got  *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc GetAvailableDatesUseCase, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/therapists/{therapistId}/available-dates", NewHandler(uc, memstore.Logger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableDates.Response{
		ServiceID:   2,
		TherapistID: 4,
		Dates: []getAvailableDates.DateSummary{
			{Date: "2025-03-02", AvailableCount: 5, HasSchedule: true},
			{Date: "2025-03-03", IsDayOff: true},
		},
	}}

	rec := serve(uc, "/therapists/4/available-dates?serviceId=2")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(4), uc.got.TherapistID)
	assert.Equal(t, int64(2), uc.got.ServiceID)
	assert.Contains(t, rec.Body.String(), `"2025-03-03"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad therapist", "/therapists/x/available-dates?serviceId=2", nil, http.StatusBadRequest},
		{"missing service", "/therapists/4/available-dates", nil, http.StatusBadRequest},
		{"invalid input", "/therapists/4/available-dates?serviceId=2", getAvailableDates.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/therapists/4/available-dates?serviceId=2", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.path)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
