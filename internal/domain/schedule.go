package domain

import "time"

// ScheduleBlock interval during which a therapist is working
type ScheduleBlock struct {
	ID          int64
	TherapistID int64
	Start       time.Time
	End         time.Time
	Note        *string
}

// Range block as a half-open time range
func (b *ScheduleBlock) Range() TimeRange {
	return TimeRange{Start: b.Start, End: b.End}
}

// DayOff whole calendar date on which a therapist does not work
type DayOff struct {
	ID          int64
	TherapistID int64
	Date        time.Time // calendar date, time part is zero
	Note        *string
}
