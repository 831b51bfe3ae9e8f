package get_available_dates

import getAvailableDates "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_dates"

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	ServiceID   int64         `json:"serviceId"`
	TherapistID int64         `json:"therapistId"`
	Dates       []DateSummary `json:"dates"`
}

// DateSummary HTTP response model
type DateSummary struct {
	Date           string `json:"date"`
	AvailableCount int    `json:"availableCount"`
	HasSchedule    bool   `json:"hasSchedule"`
	IsDayOff       bool   `json:"isDayOff"`
}

func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]DateSummary, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, DateSummary{
			Date:           d.Date,
			AvailableCount: d.AvailableCount,
			HasSchedule:    d.HasSchedule,
			IsDayOff:       d.IsDayOff,
		})
	}

	return &AvailableDatesResponse{
		ServiceID:   resp.ServiceID,
		TherapistID: resp.TherapistID,
		Dates:       dates,
	}
}
