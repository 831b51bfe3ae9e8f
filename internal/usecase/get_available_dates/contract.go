package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория выходных мастера
type ScheduleRepository interface {
	GetDaysOff(ctx context.Context, therapistID int64, from, to string) ([]domain.DayOff, error)
}

// SlotGenerator строит слоты рабочей даты вместе с признаком наличия расписания
type SlotGenerator interface {
	PlanWorkday(ctx context.Context, serviceID, therapistID int64, date time.Time, stepMinutes int) (*domain.DayPlan, error)
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
