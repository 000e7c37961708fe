package services

import (
	"sort"
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
)

// minuteInterval is a resolved block window as minute offsets from midnight
type minuteInterval struct {
	start int
	end   int
}

// blockIntervals converts blocks to minute intervals, skipping any with
// malformed clock times or an empty window
func blockIntervals(blocks []models.AvailabilityBlock) []minuteInterval {
	intervals := make([]minuteInterval, 0, len(blocks))
	for _, block := range blocks {
		start, err := MinutesFromMidnight(block.StartTime)
		if err != nil {
			continue
		}
		end, err := MinutesFromMidnight(block.EndTime)
		if err != nil || end <= start {
			continue
		}
		intervals = append(intervals, minuteInterval{start: start, end: end})
	}
	return intervals
}

// GenerateDaySlots emits candidate slots for a date from resolved rule sets,
// before any existing bookings are considered. Candidates start on a fixed
// 30-minute grid within each available block, never overlap a blocking
// block, and are returned deduplicated in ascending start order.
func GenerateDaySlots(available, blocking []models.AvailabilityBlock, date time.Time, durationMinutes int, tz *time.Location) []models.TimeSlot {
	if durationMinutes <= 0 {
		return []models.TimeSlot{}
	}

	openWindows := blockIntervals(available)
	closedWindows := blockIntervals(blocking)

	// Overlapping available blocks can emit the same start twice; dedupe by
	// start offset
	seen := make(map[int]bool)
	var starts []int

	for _, window := range openWindows {
		for start := window.start; start+durationMinutes <= window.end; start += SlotStepMinutes {
			if seen[start] {
				continue
			}
			end := start + durationMinutes

			blocked := false
			for _, closed := range closedWindows {
				if OverlapsMinutes(start, end, closed.start, closed.end) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}

			seen[start] = true
			starts = append(starts, start)
		}
	}

	sort.Ints(starts)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, tz)
	slots := make([]models.TimeSlot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, models.TimeSlot{
			StartTime:       dayStart.Add(time.Duration(start) * time.Minute),
			EndTime:         dayStart.Add(time.Duration(start+durationMinutes) * time.Minute),
			DurationMinutes: durationMinutes,
		})
	}
	return slots
}

// IsWithinRules is the point-mode coverage check: the candidate minute
// interval must sit inside some available block and clear of every blocking
// block
func IsWithinRules(available, blocking []models.AvailabilityBlock, startMinute, endMinute int) bool {
	if endMinute <= startMinute {
		return false
	}

	covered := false
	for _, window := range blockIntervals(available) {
		if startMinute >= window.start && endMinute <= window.end {
			covered = true
			break
		}
	}
	if !covered {
		return false
	}

	for _, closed := range blockIntervals(blocking) {
		if OverlapsMinutes(startMinute, endMinute, closed.start, closed.end) {
			return false
		}
	}
	return true
}
