package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidStatus returned for an unknown booking status
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// UpdateStatusRequest request to change a booking status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest staff listing filter, every field optional
type ListBookingsRequest struct {
	TherapistID *int64     `json:"therapistId,omitempty"`
	ServiceID   *int64     `json:"serviceId,omitempty"`
	Status      *string    `json:"status,omitempty"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
	Limit       uint64     `json:"limit,omitempty"`
	Offset      uint64     `json:"offset,omitempty"`
}

// ToDomainFilter converts the request into a repository filter
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TherapistID: r.TherapistID,
		ServiceID:   r.ServiceID,
		From:        r.From,
		To:          r.To,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse booking as returned to clients
type BookingResponse struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	CustomerName   string    `json:"customerName"`
	CustomerPhone  string    `json:"customerPhone"`
	ServiceID      int64     `json:"serviceId"`
	TherapistID    int64     `json:"therapistId"`
	BookingTime    time.Time `json:"bookingTime"`
	Status         string    `json:"status"`
	PriceAtBooking string    `json:"priceAtBooking"`
	PromotionID    *int64    `json:"promotionId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BookingListResponse list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts a booking; times are rendered in loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	return &BookingResponse{
		ID:             b.ID,
		Reference:      b.Reference(loc),
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		ServiceID:      b.ServiceID,
		TherapistID:    b.TherapistID,
		BookingTime:    b.BookingTime.In(loc),
		Status:         string(b.Status),
		PriceAtBooking: b.PriceAtBooking.StringFixed(domain.PriceDecimalPlaces),
		PromotionID:    b.PromotionID,
		CreatedAt:      b.CreatedAt.In(loc),
	}
}

// FromDomainBookingList converts a list of bookings
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus parses and validates a status
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
