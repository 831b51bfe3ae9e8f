package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy returned by BookingPolicy.Validate
var ErrInvalidPolicy = errors.New("domain: invalid booking policy")

// BookingPolicy booking window and slot granularity.
//
// The window is expressed in whole calendar days of Location:
//   - lower bound: start of day (today + LeadDays), inclusive
//   - upper bound: end of day (today + HorizonDays), inclusive
type BookingPolicy struct {
	LeadDays        int
	HorizonDays     int
	SlotStepMinutes int
	Location        *time.Location
}

// DefaultBookingPolicy lead 1 day, horizon 14 days, 30 minute step
func DefaultBookingPolicy(loc *time.Location) BookingPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return BookingPolicy{
		LeadDays:        DefaultLeadDays,
		HorizonDays:     DefaultHorizonDays,
		SlotStepMinutes: DefaultSlotStepMinutes,
		Location:        loc,
	}
}

// Validate checks the policy values
func (p BookingPolicy) Validate() error {
	if p.LeadDays < 0 {
		return fmt.Errorf("%w: lead days must be >= 0", ErrInvalidPolicy)
	}
	if p.HorizonDays < p.LeadDays || p.HorizonDays > MaxHorizonDays {
		return fmt.Errorf("%w: horizon days must be in [%d, %d]", ErrInvalidPolicy, p.LeadDays, MaxHorizonDays)
	}
	if p.SlotStepMinutes < MinSlotStepMinutes || p.SlotStepMinutes > MaxSlotStepMinutes {
		return fmt.Errorf("%w: slot step must be in [%d, %d] minutes", ErrInvalidPolicy, MinSlotStepMinutes, MaxSlotStepMinutes)
	}
	if p.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidPolicy)
	}
	return nil
}

// StartOfDay midnight of t's calendar date in the policy location
func (p BookingPolicy) StartOfDay(t time.Time) time.Time {
	t = t.In(p.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.Location)
}

// AddDays midnight of the date days after t's calendar date
func (p BookingPolicy) AddDays(t time.Time, days int) time.Time {
	t = t.In(p.Location)
	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, p.Location)
}

// Window bookable interval relative to now, both bounds inclusive
func (p BookingPolicy) Window(now time.Time) (lower, upper time.Time) {
	lower = p.AddDays(now, p.LeadDays)
	upper = p.AddDays(now, p.HorizonDays+1).Add(-time.Nanosecond)
	return lower, upper
}

// ContainsInstant reports whether t is inside the booking window
func (p BookingPolicy) ContainsInstant(t, now time.Time) bool {
	lower, upper := p.Window(now)
	return !t.Before(lower) && !t.After(upper)
}

// ContainsDate reports whether the calendar date of date is inside the window
func (p BookingPolicy) ContainsDate(date, now time.Time) bool {
	return p.ContainsInstant(p.StartOfDay(date), now)
}

// HorizonDates calendar dates today+LeadDays .. today+HorizonDays
func (p BookingPolicy) HorizonDates(now time.Time) []time.Time {
	dates := make([]time.Time, 0, p.HorizonDays-p.LeadDays+1)
	for d := p.LeadDays; d <= p.HorizonDays; d++ {
		dates = append(dates, p.AddDays(now, d))
	}
	return dates
}

// ParseDate parses YYYY-MM-DD as midnight in the policy location
func (p BookingPolicy) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, p.Location)
}
