package get_time_slots

import (
	"time"

	getTimeSlots "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_time_slots"
)

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	Date        string     `json:"date"`
	ServiceID   int64      `json:"serviceId"`
	TherapistID int64      `json:"therapistId"`
	Slots       []TimeSlot `json:"slots"`
}

// TimeSlot HTTP response model
type TimeSlot struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`
	Start     string `json:"start"` // RFC3339
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse converts the use case response, times rendered in loc
func FromUseCaseResponse(resp *getTimeSlots.Response, loc *time.Location) *TimeSlotsResponse {
	slots := make([]TimeSlot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, TimeSlot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Start:     s.Start.In(loc).Format(time.RFC3339),
			End:       s.End.In(loc).Format(time.RFC3339),
			Available: s.Available,
		})
	}

	return &TimeSlotsResponse{
		Date:        resp.Date,
		ServiceID:   resp.ServiceID,
		TherapistID: resp.TherapistID,
		Slots:       slots,
	}
}
