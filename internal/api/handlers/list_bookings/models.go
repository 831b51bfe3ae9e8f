package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// maxLimit page size cap
const maxLimit = 500

// ToServiceRequest разбирает необязательные query параметры
// therapistId, serviceId, status, start, end (RFC3339), limit, offset.
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	var err error
	if req.TherapistID, err = parseOptionalID(query, "therapistId"); err != nil {
		return nil, err
	}
	if req.ServiceID, err = parseOptionalID(query, "serviceId"); err != nil {
		return nil, err
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if req.From, err = parseOptionalTime(query, "start"); err != nil {
		return nil, err
	}
	if req.To, err = parseOptionalTime(query, "end"); err != nil {
		return nil, err
	}

	if s := query.Get("limit"); s != "" {
		limit, err := strconv.ParseUint(s, 10, 64)
		if err != nil || limit == 0 || limit > maxLimit {
			return nil, fmt.Errorf("limit must be in [1, %d]", maxLimit)
		}
		req.Limit = limit
	}
	if s := query.Get("offset"); s != "" {
		offset, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %v", err)
		}
		req.Offset = offset
	}

	return req, nil
}

func parseOptionalID(query url.Values, name string) (*int64, error) {
	s := query.Get(name)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &id, nil
}

func parseOptionalTime(query url.Values, name string) (*time.Time, error) {
	s := query.Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, expected RFC3339", name)
	}
	return &t, nil
}
