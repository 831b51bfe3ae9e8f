package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// Service чтение бронирований и смена статуса (операции персонала)
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	notifier     Notifier
	location     *time.Location
	now          func() time.Time
	logger       Logger
}

func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		availability: availability,
		txManager:    txManager,
		notifier:     notifier,
		location:     location,
		now:          time.Now,
		logger:       logger,
	}
}

// GetByID возвращает бронирование вместе с номером брони
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, s.location), nil
}

// List возвращает бронирования по фильтру
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("ListBookings: empty period %s - %s", filter.From, filter.To)
		return nil, fmt.Errorf("%w: period start must be before its end", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.location), nil
}

// UpdateStatus устанавливает любой из известных статусов.
// Восстановление отменённой брони проверяет, что время мастера всё ещё свободно.
// Подтверждение и отмена отправляют уведомление, ошибка отправки только логируется.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// 1. Валидация статуса
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var booking *domain.Booking

	// 2. Проверка и обновление в сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Текущее состояние брони
		current, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - get booking: %w", ErrInternal, err)
		}

		// 2.2. Отменённая бронь снова занимает время, проверяем что оно свободно
		if current.Status == domain.StatusCancelled && newStatus != domain.StatusCancelled {
			if err := s.checkReactivation(txCtx, current); err != nil {
				return err
			}
		}

		// 2.3. Обновление статуса
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		booking, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			s.logger.Error("UpdateStatus: failed to reload booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - reload booking: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerializationFailure):
			s.logger.Warn("UpdateStatus: booking id=%d concurrent conflict: %v", bookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrBookingConflict, err)
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrSlotNotAvailable),
			errors.Is(err, ErrInternal):
			return nil, err
		}
		s.logger.Error("UpdateStatus: transaction failed for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - transaction: %w", ErrInternal, err)
	}

	// 3. Уведомление после коммита
	s.notifyStatus(ctx, booking)

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, newStatus)
	return models.FromDomainBooking(booking, s.location), nil
}

// checkReactivation блокирует строку мастера и проверяет интервал брони,
// не учитывая саму бронь
func (s *Service) checkReactivation(ctx context.Context, booking *domain.Booking) error {
	if _, err := s.catalogRepo.GetTherapistByID(ctx, booking.TherapistID); err != nil {
		s.logger.Error("UpdateStatus: failed to lock therapist id=%d: %v", booking.TherapistID, err)
		return fmt.Errorf("%w: UpdateStatus - lock therapist: %w", ErrInternal, err)
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, booking.ServiceID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to get service id=%d: %v", booking.ServiceID, err)
		return fmt.Errorf("%w: UpdateStatus - get service: %w", ErrInternal, err)
	}

	start := booking.BookingTime
	end := start.Add(service.Duration())
	available, err := s.availability.IsAvailable(ctx, booking.TherapistID, start, end, &booking.ID)
	if err != nil {
		s.logger.Error("UpdateStatus: availability check failed for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: UpdateStatus - availability check: %w", ErrInternal, err)
	}
	if !available {
		s.logger.Warn("UpdateStatus: booking id=%d cannot be reactivated, therapist id=%d is busy at %s",
			booking.ID, booking.TherapistID, start)
		return ErrSlotNotAvailable
	}
	return nil
}

func (s *Service) notifyStatus(ctx context.Context, booking *domain.Booking) {
	var eventType notifier.EventType
	switch booking.Status {
	case domain.StatusConfirmed:
		eventType = notifier.EventBookingConfirmed
	case domain.StatusCancelled:
		eventType = notifier.EventBookingCancelled
	default:
		return
	}

	event := notifier.Event{
		Type:          eventType,
		BookingID:     booking.ID,
		Reference:     booking.Reference(s.location),
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		ServiceID:     booking.ServiceID,
		TherapistID:   booking.TherapistID,
		BookingTime:   booking.BookingTime,
		Price:         booking.PriceAtBooking,
		Status:        string(booking.Status),
		OccurredAt:    s.now(),
	}

	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.Error("UpdateStatus: failed to send %s notification for booking id=%d: %v", eventType, booking.ID, err)
	}
}
