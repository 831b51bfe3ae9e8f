package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusDone      BookingStatus = "done"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for one of the known statuses
func (s BookingStatus) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Booking a customer appointment for one service with one therapist.
// The end of a booking is not stored: it is BookingTime plus the
// current duration of the service.
type Booking struct {
	ID             int64
	CustomerName   string
	CustomerPhone  string
	ServiceID      int64
	TherapistID    int64
	BookingTime    time.Time
	Status         BookingStatus
	PriceAtBooking decimal.Decimal // frozen at creation
	PromotionID    *int64
	CreatedAt      time.Time
}

// IsActive returns true if the booking still occupies the therapist
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// Reference human readable booking reference BK-<YYMMDD>-<id>,
// the date part is the creation date in loc.
func (b *Booking) Reference(loc *time.Location) string {
	created := b.CreatedAt
	if loc != nil {
		created = created.In(loc)
	}
	return fmt.Sprintf("%s-%s-%d", ReferencePrefix, created.Format(ReferenceDateFormat), b.ID)
}

// BookedInterval booking interval with the end derived from the service duration
type BookedInterval struct {
	BookingID       int64
	Start           time.Time
	DurationMinutes int
}

// End derived end of the booking
func (b BookedInterval) End() time.Time {
	return b.Start.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	TherapistID *int64
	ServiceID   *int64
	Status      *BookingStatus
	From        *time.Time // inclusive
	To          *time.Time // exclusive
	Limit       uint64
	Offset      uint64
}
