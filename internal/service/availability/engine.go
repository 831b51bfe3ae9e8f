package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Engine решает, может ли мастер принять запись в интервале.
// Состояния не хранит: каждый вызов читает текущее расписание и брони,
// внутри транзакции вызывающего, если она есть в ctx.
type Engine struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	location     *time.Location
	logger       Logger
}

func NewEngine(scheduleRepo ScheduleRepository, bookingRepo BookingRepository, location *time.Location, logger Logger) *Engine {
	if location == nil {
		location = time.UTC
	}
	return &Engine{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		location:     location,
		logger:       logger,
	}
}

// IsAvailable сообщает, свободен ли мастер в [start, end):
//  1. интервал целиком внутри одного блока расписания
//  2. календарная дата интервала не выходной
//  3. интервал не пересекается ни с одной неотмененной бронью (кроме
//     excludeBookingID), конец брони считается по текущей длительности услуги
//
// Ошибки чтения возвращаются и никогда не считаются "свободно".
func (e *Engine) IsAvailable(ctx context.Context, therapistID int64, start, end time.Time, excludeBookingID *int64) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidWindow
	}

	blocks, err := e.scheduleRepo.GetContaining(ctx, therapistID, start, end)
	if err != nil {
		e.logger.Error("IsAvailable: therapist=%d failed to get schedule: %v", therapistID, err)
		return false, fmt.Errorf("%w: IsAvailable - get schedule: %w", ErrInternal, err)
	}
	if len(blocks) == 0 {
		return false, nil
	}

	date := start.In(e.location).Format(domain.DateFormat)
	dayOff, err := e.scheduleRepo.HasDayOff(ctx, therapistID, date)
	if err != nil {
		e.logger.Error("IsAvailable: therapist=%d failed to check day off %s: %v", therapistID, date, err)
		return false, fmt.Errorf("%w: IsAvailable - check day off: %w", ErrInternal, err)
	}
	if dayOff {
		return false, nil
	}

	booked, err := e.bookingRepo.GetActiveIntervalsBefore(ctx, therapistID, end, excludeBookingID)
	if err != nil {
		e.logger.Error("IsAvailable: therapist=%d failed to get bookings: %v", therapistID, err)
		return false, fmt.Errorf("%w: IsAvailable - get bookings: %w", ErrInternal, err)
	}

	for _, b := range booked {
		if excludeBookingID != nil && b.BookingID == *excludeBookingID {
			continue
		}
		if domain.Overlaps(start, end, b.Start, b.End()) {
			return false, nil
		}
	}

	return true, nil
}
