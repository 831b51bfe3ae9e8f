package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/notifier"
)

// CatalogRepository интерфейс репозитория услуг и мастеров.
// GetTherapistByID внутри транзакции блокирует строку мастера.
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetTherapistByID(ctx context.Context, id int64) (*domain.Therapist, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityChecker проверка, свободен ли мастер в интервале
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, therapistID int64, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// PriceCalculator расчет цены на момент начала бронирования
type PriceCalculator interface {
	CalculateBookingPrice(ctx context.Context, serviceID int64, at time.Time, promotionID *int64) (*domain.PriceQuote, error)
}

// Notifier отправка событий бронирования клиентам
type Notifier interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingObserver счетчик попыток бронирования по исходу
type BookingObserver interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
