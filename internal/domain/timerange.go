package domain

import "time"

// TimeRange half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds [start, start+duration).
func NewTimeRange(start time.Time, duration time.Duration) TimeRange {
	return TimeRange{Start: start, End: start.Add(duration)}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
// Ranges that only touch at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Overlaps reports whether r and other intersect.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

// Contains reports whether other lies entirely within r.
func (r TimeRange) Contains(other TimeRange) bool {
	return !r.Start.After(other.Start) && !r.End.Before(other.End)
}

// Duration length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
