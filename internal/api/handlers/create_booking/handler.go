package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid bookingTime, expected RFC3339 e.g. 2025-07-05T10:00:00+07:00"
	msgServiceNotFound    = "service not found"
	msgTherapistNotFound  = "therapist not found"
	msgPromotionNotFound  = "promotion not found"
	msgServiceInactive    = "service is not available for booking"
	msgTherapistInactive  = "therapist is not available for booking"
	msgOutOfWindow        = "booking time is outside the booking window"
	msgSlotNotAvailable   = "selected time slot is not available"
	msgConflict           = "the slot was just booked by someone else, please choose another time"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	// Конвертируем HTTP запрос в модель use case
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse booking time %q: %v", req.BookingTime, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrTherapistNotFound):
			h.logger.Warn("POST /bookings - Therapist not found: therapist_id=%d", req.TherapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, createBooking.ErrPromotionNotFound):
			h.logger.Warn("POST /bookings - Promotion not found: promotion_id=%v", req.PromotionID)
			handlers.RespondNotFound(w, msgPromotionNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessable(w, handlers.CodeInactiveResource, msgServiceInactive)

		case errors.Is(err, createBooking.ErrTherapistInactive):
			h.logger.Warn("POST /bookings - Therapist inactive: therapist_id=%d", req.TherapistID)
			handlers.RespondUnprocessable(w, handlers.CodeInactiveResource, msgTherapistInactive)

		case errors.Is(err, createBooking.ErrOutOfWindow):
			h.logger.Warn("POST /bookings - Out of booking window: time=%s", req.BookingTime)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeOutOfWindow, msgOutOfWindow)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: therapist_id=%d, time=%s", req.TherapistID, req.BookingTime)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Concurrent booking conflict: therapist_id=%d, time=%s", req.TherapistID, req.BookingTime)
			handlers.RespondConflict(w, handlers.CodeConflict, msgConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: therapist_id=%d, service_id=%d, error=%v",
				req.TherapistID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s",
		result.BookingID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
