package get_service_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

type PriceService interface {
	CalculateBookingPrice(ctx context.Context, serviceID int64, at time.Time, promotionID *int64) (*domain.PriceQuote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
