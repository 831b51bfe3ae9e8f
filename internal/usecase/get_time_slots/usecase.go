package get_time_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	generator    SlotGenerator
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(generator SlotGenerator, policy domain.BookingPolicy, logger Logger) *UseCase {
	return &UseCase{
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

// Execute возвращает все слоты даты с признаком доступности.
// Для дат вне окна бронирования слотов нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTimeSlots: service=%d, therapist=%d, date=%s", req.ServiceID, req.TherapistID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req, uc.policy)
	if err != nil {
		uc.logger.Warn("GetTimeSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:        date.Format(domain.DateFormat),
		ServiceID:   req.ServiceID,
		TherapistID: req.TherapistID,
		Slots:       []Slot{},
	}

	// 2. Окно бронирования
	if !uc.policy.ContainsDate(date, uc.timeProvider.Now()) {
		uc.logger.Info("GetTimeSlots: date %s is outside the booking window", resp.Date)
		return resp, nil
	}

	// 3. Слоты
	slots, err := uc.generator.Generate(ctx, req.ServiceID, req.TherapistID, date, uc.policy.SlotStepMinutes)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: generate slots: %w", ErrInternal, err)
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{
			StartTime: s.Start.In(uc.policy.Location).Format(domain.TimeFormat),
			EndTime:   s.End.In(uc.policy.Location).Format(domain.TimeFormat),
			Start:     s.Start,
			End:       s.End,
			Available: s.Available,
		})
	}

	uc.logger.Info("GetTimeSlots: generated %d slots for %s", len(resp.Slots), resp.Date)
	return resp, nil
}
