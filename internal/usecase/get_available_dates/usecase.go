package get_available_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// UseCase use case для сводки доступности по горизонту бронирования
type UseCase struct {
	scheduleRepo ScheduleRepository
	generator    SlotGenerator
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	generator SlotGenerator,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		generator:    generator,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает сводку по каждой дате от today+lead до today+horizon.
// Выходные всего горизонта читаются одним запросом. Выходной важнее
// расписания: для него блоки и слоты не запрашиваются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: service=%d, therapist=%d", req.ServiceID, req.TherapistID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Даты горизонта
	dates := uc.policy.HorizonDates(uc.timeProvider.Now())
	resp := &Response{
		ServiceID:   req.ServiceID,
		TherapistID: req.TherapistID,
		Dates:       make([]DateSummary, 0, len(dates)),
	}
	if len(dates) == 0 {
		return resp, nil
	}

	// 3. Выходные всего горизонта
	from := dates[0].Format(domain.DateFormat)
	to := dates[len(dates)-1].Format(domain.DateFormat)
	daysOff, err := uc.scheduleRepo.GetDaysOff(ctx, req.TherapistID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get days off %s..%s: %v", from, to, err)
		return nil, fmt.Errorf("%w: get days off: %w", ErrInternal, err)
	}
	offDates := make(map[string]struct{}, len(daysOff))
	for _, d := range daysOff {
		offDates[d.Date.Format(domain.DateFormat)] = struct{}{}
	}

	// 4. Сводка по каждой дате
	for _, date := range dates {
		summary, err := uc.summarize(ctx, req, date, offDates)
		if err != nil {
			return nil, err
		}
		resp.Dates = append(resp.Dates, summary)
	}

	uc.logger.Info("GetAvailableDates: summarized %d dates %s..%s", len(resp.Dates), from, to)
	return resp, nil
}

func (uc *UseCase) summarize(ctx context.Context, req *Request, date time.Time, offDates map[string]struct{}) (DateSummary, error) {
	summary := DateSummary{Date: date.Format(domain.DateFormat)}

	if _, ok := offDates[summary.Date]; ok {
		summary.IsDayOff = true
		return summary, nil
	}

	plan, err := uc.generator.PlanWorkday(ctx, req.ServiceID, req.TherapistID, date, uc.policy.SlotStepMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to generate slots for %s: %v", summary.Date, err)
		return summary, fmt.Errorf("%w: generate slots: %w", ErrInternal, err)
	}

	summary.HasSchedule = plan.HasSchedule
	for _, s := range plan.Slots {
		if s.Available {
			summary.AvailableCount++
		}
	}

	return summary, nil
}
