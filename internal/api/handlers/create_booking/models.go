package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string `json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,len=10,numeric"`
	ServiceID     int64  `json:"serviceId" validate:"gt=0"`
	TherapistID   int64  `json:"therapistId" validate:"gt=0"`
	BookingTime   string `json:"bookingTime" validate:"required"` // RFC3339, "2025-07-05T10:00:00+07:00"
	PromotionID   *int64 `json:"promotionId,omitempty" validate:"omitempty,gt=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID     int64  `json:"bookingId"`
	Reference     string `json:"reference"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	ServiceID     int64  `json:"serviceId"`
	TherapistID   int64  `json:"therapistId"`
	BookingTime   string `json:"bookingTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
	Price         string `json:"price"`
	BasePrice     string `json:"basePrice"`
	PromotionID   *int64 `json:"promotionId,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingTime, err := time.Parse(time.RFC3339, r.BookingTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceID:     r.ServiceID,
		TherapistID:   r.TherapistID,
		BookingTime:   bookingTime,
		PromotionID:   r.PromotionID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response, время в loc
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	return &BookingResponse{
		BookingID:     resp.BookingID,
		Reference:     resp.Reference,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		ServiceID:     resp.ServiceID,
		TherapistID:   resp.TherapistID,
		BookingTime:   resp.BookingTime.In(loc).Format(time.RFC3339),
		EndTime:       resp.EndTime.In(loc).Format(time.RFC3339),
		Status:        resp.Status,
		Price:         resp.Price.StringFixed(domain.PriceDecimalPlaces),
		BasePrice:     resp.BasePrice.StringFixed(domain.PriceDecimalPlaces),
		PromotionID:   resp.PromotionID,
		CreatedAt:     resp.CreatedAt.In(loc).Format(time.RFC3339),
	}
}
