package services

import (
	"fmt"
	"time"
)

// SlotStepMinutes is the fixed step between candidate slot start times
const SlotStepMinutes = 30

// MinutesFromMidnight converts a clock time string ("09:00") to the minute
// offset from midnight
func MinutesFromMidnight(clockTime string) (int, error) {
	t, err := time.Parse("15:04", clockTime)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", clockTime)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// OverlapsMinutes tests half-open interval overlap on minute offsets:
// [aStart, aEnd) intersects [bStart, bEnd)
func OverlapsMinutes(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// OverlapsTime tests half-open interval overlap on instants:
// [aStart, aEnd) intersects [bStart, bEnd)
func OverlapsTime(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
