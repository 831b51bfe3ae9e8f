package bookings

import "errors"

var (
	// ErrBookingNotFound returned when no booking has the requested id
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidInput returned for malformed filters or unknown statuses
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrSlotNotAvailable returned when a cancelled booking is reactivated
	// but its time is already taken by another booking
	ErrSlotNotAvailable = errors.New("bookings: time slot is not available")

	// ErrBookingConflict returned when a concurrent transaction won the slot
	ErrBookingConflict = errors.New("bookings: concurrent booking conflict")

	// ErrInternal returned on storage failures
	ErrInternal = errors.New("bookings: internal error")
)
