package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrTherapistNotFound возвращается, когда мастер не найден
	ErrTherapistNotFound = errors.New("create_booking: therapist not found")

	// ErrPromotionNotFound возвращается, когда явно запрошенная акция не найдена
	ErrPromotionNotFound = errors.New("create_booking: promotion not found")

	// ErrInactiveResource общий родитель ошибок неактивной услуги и мастера
	ErrInactiveResource = errors.New("create_booking: resource is not active")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = fmt.Errorf("%w: service", ErrInactiveResource)

	// ErrTherapistInactive возвращается, когда мастер отключен
	ErrTherapistInactive = fmt.Errorf("%w: therapist", ErrInactiveResource)

	// ErrOutOfWindow возвращается, когда время вне окна бронирования
	ErrOutOfWindow = errors.New("create_booking: booking time is outside the booking window")

	// ErrSlotNotAvailable возвращается, когда мастер занят в течение длительности услуги
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrBookingConflict возвращается, когда параллельное бронирование заняло слот раньше
	ErrBookingConflict = errors.New("create_booking: concurrent booking conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
