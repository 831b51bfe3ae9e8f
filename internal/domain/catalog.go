package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service a spa treatment offered to customers
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	BasePrice       decimal.Decimal
	IsActive        bool
}

// Duration length of one appointment of this service
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Therapist staff member performing services
type Therapist struct {
	ID        int64
	Name      string
	Specialty string
	IsActive  bool
}
