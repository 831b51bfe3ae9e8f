package get_time_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	getTimeSlots "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_time_slots"
)

const (
	msgInvalidTherapistID = "invalid therapist id"
	msgInvalidServiceID   = "serviceId query parameter is required"
	msgInvalidDate        = "date query parameter is required, expected YYYY-MM-DD"
)

type Handler struct {
	useCase  GetTimeSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetTimeSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/time-slots?serviceId=&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := strconv.ParseInt(mux.Vars(r)["therapistId"], 10, 64)
	if err != nil || therapistID <= 0 {
		h.logger.Warn("GET /therapists/{id}/time-slots - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /therapists/{id}/time-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /therapists/{id}/time-slots - Missing date")
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getTimeSlots.Request{
		ServiceID:   serviceID,
		TherapistID: therapistID,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getTimeSlots.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/time-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /therapists/{id}/time-slots - Failed to get slots: therapist_id=%d, service_id=%d, error=%v",
				therapistID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/{id}/time-slots - Slots retrieved: therapist_id=%d, date=%s, count=%d",
		therapistID, result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
