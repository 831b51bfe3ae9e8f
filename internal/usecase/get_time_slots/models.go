package get_time_slots

import "time"

// Request slots of one therapist and service on a date
type Request struct {
	ServiceID   int64
	TherapistID int64
	Date        string // YYYY-MM-DD in the booking timezone
}

// Response slot list, empty when the date is outside the booking window
type Response struct {
	Date        string
	ServiceID   int64
	TherapistID int64
	Slots       []Slot
}

// Slot candidate start with its availability
type Slot struct {
	StartTime string // HH:MM local time
	EndTime   string
	Start     time.Time
	End       time.Time
	Available bool
}
