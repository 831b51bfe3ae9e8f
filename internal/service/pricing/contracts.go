package pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// PriceRepository история цен и акции
type PriceRepository interface {
	GetPriceAt(ctx context.Context, serviceID int64, at time.Time) (*domain.PriceHistoryEntry, error)
	GetActivePromotion(ctx context.Context, date string) (*domain.Promotion, error)
	GetPromotionByID(ctx context.Context, id int64) (*domain.Promotion, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
