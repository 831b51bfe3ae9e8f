package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository расписание мастера на дату
type ScheduleRepository interface {
	GetIntersecting(ctx context.Context, therapistID int64, from, to time.Time) ([]domain.ScheduleBlock, error)
	HasDayOff(ctx context.Context, therapistID int64, date string) (bool, error)
}

// AvailabilityChecker проверка, свободен ли интервал
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, therapistID int64, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
