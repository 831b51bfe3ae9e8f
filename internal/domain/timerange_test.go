package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 10, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"touching end to start", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching start to end", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(9, 0), at(17, 0), at(10, 0), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"disjoint", at(9, 0), at(9, 30), at(10, 0), at(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// symmetric
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	block := TimeRange{Start: at(9, 0), End: at(18, 0)}

	assert.True(t, block.Contains(NewTimeRange(at(9, 0), time.Hour)))
	assert.True(t, block.Contains(NewTimeRange(at(17, 0), time.Hour)))
	assert.False(t, block.Contains(NewTimeRange(at(17, 30), time.Hour)))
	assert.False(t, block.Contains(NewTimeRange(at(8, 30), time.Hour)))
	assert.Equal(t, 9*time.Hour, block.Duration())
}
