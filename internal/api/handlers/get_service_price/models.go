package get_service_price

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// PriceResponse HTTP response model
type PriceResponse struct {
	ServiceID int64              `json:"serviceId"`
	At        string             `json:"at"`
	Price     string             `json:"price"`
	BasePrice string             `json:"basePrice"`
	Promotion *PromotionResponse `json:"promotion,omitempty"`
}

// PromotionResponse applied promotion
type PromotionResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	DiscountType  string `json:"discountType"`
	DiscountValue string `json:"discountValue"`
}

func FromQuote(serviceID int64, at time.Time, quote *domain.PriceQuote) *PriceResponse {
	resp := &PriceResponse{
		ServiceID: serviceID,
		At:        at.Format(time.RFC3339),
		Price:     quote.Price.StringFixed(domain.PriceDecimalPlaces),
		BasePrice: quote.BasePrice.StringFixed(domain.PriceDecimalPlaces),
	}

	if p := quote.Promotion; p != nil {
		resp.Promotion = &PromotionResponse{
			ID:            p.ID,
			Title:         p.Title,
			DiscountType:  string(p.DiscountType),
			DiscountValue: p.DiscountValue.String(),
		}
	}

	return resp
}
