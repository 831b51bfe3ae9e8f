package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания мастера
type ScheduleRepository interface {
	GetContaining(ctx context.Context, therapistID int64, start, end time.Time) ([]domain.ScheduleBlock, error)
	HasDayOff(ctx context.Context, therapistID int64, date string) (bool, error)
}

// BookingRepository занятые интервалы мастера
type BookingRepository interface {
	GetActiveIntervalsBefore(ctx context.Context, therapistID int64, before time.Time, excludeBookingID *int64) ([]domain.BookedInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
