package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// исходы попыток бронирования, метки метрики
const (
	outcomeCreated         = "created"
	outcomeInvalid         = "invalid"
	outcomeNotFound        = "not_found"
	outcomeInactive        = "inactive"
	outcomeOutOfWindow     = "out_of_window"
	outcomeSlotUnavailable = "slot_unavailable"
	outcomeConflict        = "conflict"
	outcomeError           = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	pricing      PriceCalculator
	notifier     Notifier
	txManager    TransactionManager
	observer     BookingObserver
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	availability AvailabilityChecker,
	priceCalculator PriceCalculator,
	notifier Notifier,
	txManager TransactionManager,
	observer BookingObserver,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		pricing:      priceCalculator,
		notifier:     notifier,
		txManager:    txManager,
		observer:     observer,
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

// Execute выполняет use case создания бронирования в статусе pending.
// Все проверки и вставка идут в одной сериализуемой транзакции, строка
// мастера блокируется первой, поэтому параллельные бронирования одного
// мастера обрабатываются по очереди.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, therapist=%d, time=%s",
		req.ServiceID, req.TherapistID, req.BookingTime.Format(time.RFC3339))

	resp, err := uc.execute(ctx, req)
	if uc.observer != nil {
		uc.observer.ObserveBooking(outcomeOf(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result   *domain.Booking
		quote    *domain.PriceQuote
		duration time.Duration
	)

	// 3. Проверки и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Услуга существует и активна
		service, err := uc.catalogRepo.GetServiceByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !service.IsActive {
			uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
			return ErrServiceInactive
		}

		// 3.2. Мастер существует и активен (строка заблокирована до коммита)
		therapist, err := uc.catalogRepo.GetTherapistByID(txCtx, req.TherapistID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrTherapistNotFound) {
				uc.logger.Warn("CreateBooking: therapist id=%d not found", req.TherapistID)
				return ErrTherapistNotFound
			}
			uc.logger.Error("CreateBooking: failed to get therapist id=%d: %v", req.TherapistID, err)
			return fmt.Errorf("%w: failed to get therapist: %w", ErrInternal, err)
		}
		if !therapist.IsActive {
			uc.logger.Warn("CreateBooking: therapist id=%d is inactive", req.TherapistID)
			return ErrTherapistInactive
		}

		// 3.3. Окно бронирования
		if !uc.policy.ContainsInstant(req.BookingTime, now) {
			lower, upper := uc.policy.Window(now)
			uc.logger.Warn("CreateBooking: time %s outside window [%s, %s]", req.BookingTime, lower, upper)
			return fmt.Errorf("%w: bookings are accepted from %s to %s", ErrOutOfWindow,
				lower.Format(domain.DateFormat), upper.Format(domain.DateFormat))
		}

		// 3.4. Мастер свободен на всю длительность услуги
		duration = service.Duration()
		end := req.BookingTime.Add(duration)
		available, err := uc.availability.IsAvailable(txCtx, req.TherapistID, req.BookingTime, end, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateBooking: therapist id=%d is not available at %s", req.TherapistID, req.BookingTime)
			return ErrSlotNotAvailable
		}

		// 3.5. Цена на момент бронирования
		quote, err = uc.pricing.CalculateBookingPrice(txCtx, req.ServiceID, req.BookingTime, req.PromotionID)
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrPromotionNotFound):
				return ErrPromotionNotFound
			case errors.Is(err, pricing.ErrServiceNotFound):
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to calculate price: %v", err)
			return fmt.Errorf("%w: calculate price: %w", ErrInternal, err)
		}

		// 3.6. Вставка с зафиксированной ценой
		booking := &domain.Booking{
			CustomerName:   req.CustomerName,
			CustomerPhone:  req.CustomerPhone,
			ServiceID:      req.ServiceID,
			TherapistID:    req.TherapistID,
			BookingTime:    req.BookingTime,
			Status:         domain.StatusPending,
			PriceAtBooking: quote.Price,
		}
		if quote.Promotion != nil {
			booking.PromotionID = &quote.Promotion.ID
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: therapist id=%d concurrent booking conflict: %v", req.TherapistID, err)
			return nil, fmt.Errorf("%w: %v", ErrBookingConflict, err)
		}
		if isUsecaseError(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction: %w", ErrInternal, err)
	}

	reference := result.Reference(uc.policy.Location)
	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s price=%s",
		result.ID, reference, result.PriceAtBooking.StringFixed(domain.PriceDecimalPlaces))

	// 4. Уведомление после коммита, ошибка отправки не отменяет бронирование
	uc.notifyCreated(ctx, result, reference)

	resp := &Response{
		BookingID:     result.ID,
		Reference:     reference,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		ServiceID:     result.ServiceID,
		TherapistID:   result.TherapistID,
		BookingTime:   result.BookingTime,
		EndTime:       result.BookingTime.Add(duration),
		Status:        string(result.Status),
		Price:         result.PriceAtBooking,
		BasePrice:     quote.BasePrice,
		PromotionID:   result.PromotionID,
		CreatedAt:     result.CreatedAt,
	}
	return resp, nil
}

func (uc *UseCase) notifyCreated(ctx context.Context, booking *domain.Booking, reference string) {
	event := notifier.Event{
		Type:          notifier.EventBookingCreated,
		BookingID:     booking.ID,
		Reference:     reference,
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		ServiceID:     booking.ServiceID,
		TherapistID:   booking.TherapistID,
		BookingTime:   booking.BookingTime,
		Price:         booking.PriceAtBooking,
		Status:        string(booking.Status),
		OccurredAt:    uc.timeProvider.Now(),
	}

	if err := uc.notifier.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to send notification for booking id=%d: %v", booking.ID, err)
	}
}

func isUsecaseError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrServiceNotFound,
		ErrTherapistNotFound,
		ErrPromotionNotFound,
		ErrInactiveResource,
		ErrOutOfWindow,
		ErrSlotNotAvailable,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrInvalidInput):
		return outcomeInvalid
	case errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrTherapistNotFound),
		errors.Is(err, ErrPromotionNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrInactiveResource):
		return outcomeInactive
	case errors.Is(err, ErrOutOfWindow):
		return outcomeOutOfWindow
	case errors.Is(err, ErrSlotNotAvailable):
		return outcomeSlotUnavailable
	case errors.Is(err, ErrBookingConflict):
		return outcomeConflict
	default:
		return outcomeError
	}
}
