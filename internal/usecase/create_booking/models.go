package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string
	CustomerPhone string // 10 digits
	ServiceID     int64
	TherapistID   int64
	BookingTime   time.Time // appointment start
	PromotionID   *int64    // explicit promotion, applied without date checks
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID     int64
	Reference     string // BK-YYMMDD-id
	CustomerName  string
	CustomerPhone string
	ServiceID     int64
	TherapistID   int64
	BookingTime   time.Time
	EndTime       time.Time
	Status        string

	Price       decimal.Decimal // frozen price
	BasePrice   decimal.Decimal
	PromotionID *int64

	CreatedAt time.Time
}
