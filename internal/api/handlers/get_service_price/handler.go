package get_service_price

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
)

const (
	msgInvalidServiceID   = "invalid service id"
	msgInvalidAt          = "invalid at, expected RFC3339"
	msgInvalidPromotionID = "invalid promotionId"
	msgServiceNotFound    = "service not found"
	msgPromotionNotFound  = "promotion not found"
)

type Handler struct {
	service  PriceService
	location *time.Location
	now      func() time.Time
	logger   Logger
}

func NewHandler(service PriceService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/price?at=RFC3339&promotionId=
// Without `at` the current price is returned.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /services/{id}/price - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	at := h.now()
	if s := r.URL.Query().Get("at"); s != "" {
		at, err = time.Parse(time.RFC3339, s)
		if err != nil {
			h.logger.Warn("GET /services/{id}/price - Invalid at %q: %v", s, err)
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
	}

	var promotionID *int64
	if s := r.URL.Query().Get("promotionId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /services/{id}/price - Invalid promotion ID %q", s)
			handlers.RespondBadRequest(w, msgInvalidPromotionID)
			return
		}
		promotionID = &id
	}

	quote, err := h.service.CalculateBookingPrice(r.Context(), serviceID, at, promotionID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/price - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, pricing.ErrPromotionNotFound):
			h.logger.Warn("GET /services/{id}/price - Promotion not found: promotion_id=%d", *promotionID)
			handlers.RespondNotFound(w, msgPromotionNotFound)

		default:
			h.logger.Error("GET /services/{id}/price - Failed to calculate price: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/price - Price calculated: service_id=%d, price=%s", serviceID, quote.Price)
	handlers.RespondJSON(w, http.StatusOK, FromQuote(serviceID, at.In(h.location), quote))
}
