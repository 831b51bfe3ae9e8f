package notifier

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType kind of booking notification
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// Event booking notification published for the mailer and other consumers
type Event struct {
	Type          EventType       `json:"type"`
	BookingID     int64           `json:"bookingId"`
	Reference     string          `json:"reference"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	ServiceID     int64           `json:"serviceId"`
	TherapistID   int64           `json:"therapistId"`
	BookingTime   time.Time       `json:"bookingTime"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
