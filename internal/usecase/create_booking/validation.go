package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// validateRequest проверяет запрос и обрезает пробелы в имени клиента
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	nameLen := utf8.RuneCountInString(req.CustomerName)
	if nameLen < domain.MinCustomerNameLength || nameLen > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be %d-%d characters",
			ErrInvalidInput, domain.MinCustomerNameLength, domain.MaxCustomerNameLength)
	}

	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	if !phonePattern.MatchString(req.CustomerPhone) {
		return fmt.Errorf("%w: customer phone must be 10 digits", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.PromotionID != nil && *req.PromotionID <= 0 {
		return fmt.Errorf("%w: promotionID must be positive", ErrInvalidInput)
	}

	if req.BookingTime.IsZero() {
		return fmt.Errorf("%w: booking time is required", ErrInvalidInput)
	}

	return nil
}
