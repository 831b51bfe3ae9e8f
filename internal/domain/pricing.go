package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType how a promotion reduces the price
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// IsValid returns true for one of the known discount types
func (t DiscountType) IsValid() bool {
	return t == DiscountPercent || t == DiscountAmount
}

// PriceHistoryEntry price of a service valid in [StartedAt, EndedAt)
type PriceHistoryEntry struct {
	ID        int64
	ServiceID int64
	Price     decimal.Decimal
	StartedAt time.Time
	EndedAt   *time.Time // nil = open ended
}

// Promotion discount valid on calendar dates StartDate..EndDate inclusive
type Promotion struct {
	ID            int64
	Title         string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	IsActive      bool
}

// PriceQuote result of a booking price calculation
type PriceQuote struct {
	Price     decimal.Decimal
	BasePrice decimal.Decimal
	Promotion *Promotion
}
