package domain

import "time"

// Slot candidate appointment start for a service with a therapist
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// DateSummary availability summary of one calendar date
type DateSummary struct {
	Date           time.Time
	AvailableCount int
	HasSchedule    bool
	IsDayOff       bool
}

// DayPlan слоты одной даты вместе с фактами расписания, из которых они построены
type DayPlan struct {
	Slots       []Slot
	HasSchedule bool
	IsDayOff    bool
}
