package slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
)

// Generator строит список кандидатов на запись в пределах одной даты
type Generator struct {
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	availability AvailabilityChecker
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

func NewGenerator(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	availability AvailabilityChecker,
	location *time.Location,
	logger Logger,
) *Generator {
	if location == nil {
		location = time.UTC
	}
	return &Generator{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		availability: availability,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (g *Generator) WithTimeProvider(tp TimeProvider) *Generator {
	g.timeProvider = tp
	return g
}

// Generate возвращает все слоты услуги у мастера на календарную дату,
// доступные и занятые, упорядоченные по началу.
// Кандидаты идут по каждому блоку расписания с шагом stepMinutes и должны
// целиком помещаться в блок. Начала не позже now отбрасываются.
// Неизвестная услуга или выходной дают пустой список.
func (g *Generator) Generate(ctx context.Context, serviceID, therapistID int64, date time.Time, stepMinutes int) ([]domain.Slot, error) {
	plan, err := g.plan(ctx, serviceID, therapistID, date, stepMinutes, true)
	if err != nil {
		return nil, err
	}
	return plan.Slots, nil
}

// PlanWorkday строит слоты даты, про которую вызывающий уже знает, что это
// не выходной. Выходной не перепроверяется, HasSchedule берется из тех же
// блоков, по которым строились слоты.
func (g *Generator) PlanWorkday(ctx context.Context, serviceID, therapistID int64, date time.Time, stepMinutes int) (*domain.DayPlan, error) {
	return g.plan(ctx, serviceID, therapistID, date, stepMinutes, false)
}

func (g *Generator) plan(ctx context.Context, serviceID, therapistID int64, date time.Time, stepMinutes int, checkDayOff bool) (*domain.DayPlan, error) {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}

	local := date.In(g.location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, g.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	plan := &domain.DayPlan{Slots: []domain.Slot{}}

	// 1. Выходной
	if checkDayOff {
		dayOff, err := g.scheduleRepo.HasDayOff(ctx, therapistID, dayStart.Format(domain.DateFormat))
		if err != nil {
			g.logger.Error("GenerateSlots: therapist=%d failed to check day off: %v", therapistID, err)
			return nil, fmt.Errorf("%w: Generate - check day off: %w", ErrInternal, err)
		}
		if dayOff {
			plan.IsDayOff = true
			return plan, nil
		}
	}

	// 2. Блоки расписания, пересекающие дату
	blocks, err := g.scheduleRepo.GetIntersecting(ctx, therapistID, dayStart, dayEnd)
	if err != nil {
		g.logger.Error("GenerateSlots: therapist=%d failed to get schedule: %v", therapistID, err)
		return nil, fmt.Errorf("%w: Generate - get schedule: %w", ErrInternal, err)
	}
	if len(blocks) == 0 {
		return plan, nil
	}
	plan.HasSchedule = true

	// 3. Услуга
	service, err := g.serviceRepo.GetServiceByID(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return plan, nil
	}
	if err != nil {
		g.logger.Error("GenerateSlots: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Generate - get service: %w", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		return plan, nil
	}

	// 4. Кандидаты
	now := g.timeProvider.Now()
	duration := service.Duration()
	step := time.Duration(stepMinutes) * time.Minute
	seen := make(map[int64]struct{})

	for _, block := range blocks {
		for start := block.Start; !start.Add(duration).After(block.End); start = start.Add(step) {
			if start.Before(dayStart) || !start.Before(dayEnd) || !start.After(now) {
				continue
			}
			if _, dup := seen[start.UnixNano()]; dup {
				continue
			}
			seen[start.UnixNano()] = struct{}{}

			end := start.Add(duration)
			available, err := g.availability.IsAvailable(ctx, therapistID, start, end, nil)
			if err != nil {
				return nil, fmt.Errorf("%w: Generate - check availability: %w", ErrInternal, err)
			}

			plan.Slots = append(plan.Slots, domain.Slot{
				Start:     start.In(g.location),
				End:       end.In(g.location),
				Available: available,
			})
		}
	}

	sort.Slice(plan.Slots, func(i, j int) bool { return plan.Slots[i].Start.Before(plan.Slots[j].Start) })

	return plan, nil
}
