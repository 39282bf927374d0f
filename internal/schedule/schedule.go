// Package schedule holds pure queries over a list of shifts.
package schedule

import (
	"sort"

	"telegram-shift-bot/internal/models"
)

// SortByStart returns a copy of shifts ordered by start time. "HH:MM" is
// zero-padded, so string order is chronological order within one day.
func SortByStart(shifts []models.Shift) []models.Shift {
	sorted := make([]models.Shift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}

// FindCurrent returns the first shift in input order whose start time equals
// now exactly.
func FindCurrent(shifts []models.Shift, now string) (models.Shift, bool) {
	for _, s := range shifts {
		if s.StartTime == now {
			return s, true
		}
	}
	return models.Shift{}, false
}

// IndexOfStart returns the index of the first sorted shift starting at now,
// or -1.
func IndexOfStart(sorted []models.Shift, now string) int {
	for i, s := range sorted {
		if s.StartTime == now {
			return i
		}
	}
	return -1
}

// FindPrevious returns the username of the shift preceding index in sorted
// order. The first shift of the day wraps around to the last one (previous
// day's final shift); a lone shift has no predecessor.
func FindPrevious(sorted []models.Shift, index int) (string, bool) {
	switch {
	case index < 0 || index >= len(sorted):
		return "", false
	case index > 0:
		return sorted[index-1].Username, true
	case len(sorted) > 1:
		return sorted[len(sorted)-1].Username, true
	}
	return "", false
}

// NextID returns max existing id + 1, or 1 for an empty schedule.
func NextID(shifts []models.Shift) int {
	maxID := 0
	for _, s := range shifts {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	return maxID + 1
}
