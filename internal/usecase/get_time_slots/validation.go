package get_time_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest проверяет id и разбирает дату в часовом поясе политики
func validateRequest(req *Request, policy domain.BookingPolicy) (time.Time, error) {
	if req.ServiceID <= 0 {
		return time.Time{}, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.TherapistID <= 0 {
		return time.Time{}, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	date, err := policy.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in format %s", ErrInvalidInput, domain.DateFormat)
	}

	return date, nil
}
