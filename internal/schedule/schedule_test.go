package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-shift-bot/internal/models"
)

func dayShifts() []models.Shift {
	return []models.Shift{
		{ID: 3, Username: "carol", StartTime: "23:00", EndTime: "09:00"},
		{ID: 1, Username: "alice", StartTime: "09:00", EndTime: "17:00"},
		{ID: 2, Username: "bob", StartTime: "17:00", EndTime: "23:00"},
	}
}

func TestSortByStart(t *testing.T) {
	in := dayShifts()
	got := SortByStart(in)

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].ID, got[1].ID, got[2].ID})
	// input untouched
	assert.Equal(t, 3, in[0].ID)
}

func TestSortByStart_KeepsEqualStartsInInputOrder(t *testing.T) {
	got := SortByStart([]models.Shift{
		{ID: 7, StartTime: "10:00"},
		{ID: 2, StartTime: "08:00"},
		{ID: 5, StartTime: "10:00"},
	})
	assert.Equal(t, []int{2, 7, 5}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestFindCurrent(t *testing.T) {
	tests := []struct {
		name   string
		shifts []models.Shift
		now    string
		wantID int
		wantOK bool
	}{
		{name: "exact match", shifts: dayShifts(), now: "17:00", wantID: 2, wantOK: true},
		{name: "started earlier is not current", shifts: dayShifts(), now: "17:01", wantOK: false},
		{name: "no shift at all", shifts: nil, now: "09:00", wantOK: false},
		{
			name: "duplicates return first in input order",
			shifts: []models.Shift{
				{ID: 4, Username: "dave", StartTime: "08:00"},
				{ID: 9, Username: "erin", StartTime: "10:00"},
				{ID: 5, Username: "frank", StartTime: "10:00"},
			},
			now:    "10:00",
			wantID: 9,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindCurrent(tt.shifts, tt.now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestFindPrevious(t *testing.T) {
	sorted := SortByStart(dayShifts())

	tests := []struct {
		name     string
		sorted   []models.Shift
		index    int
		wantUser string
		wantOK   bool
	}{
		{name: "middle of the day", sorted: sorted, index: 1, wantUser: "alice", wantOK: true},
		{name: "first wraps to last", sorted: sorted, index: 0, wantUser: "carol", wantOK: true},
		{name: "single shift has no previous", sorted: sorted[:1], index: 0, wantOK: false},
		{name: "index out of range", sorted: sorted, index: 5, wantOK: false},
		{name: "negative index", sorted: sorted, index: -1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindPrevious(tt.sorted, tt.index)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}

func TestIndexOfStart(t *testing.T) {
	sorted := SortByStart(dayShifts())
	assert.Equal(t, 1, IndexOfStart(sorted, "17:00"))
	assert.Equal(t, -1, IndexOfStart(sorted, "12:00"))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 4, NextID(dayShifts()))
}

func TestNextID_NeverReusesAfterDeletes(t *testing.T) {
	var shifts []models.Shift
	seen := map[int]bool{}
	last := 0

	for i := 0; i < 5; i++ {
		id := NextID(shifts)
		require.False(t, seen[id], "id %d issued twice", id)
		require.Greater(t, id, last)
		seen[id] = true
		last = id
		shifts = append(shifts, models.Shift{ID: id})

		// drop the oldest shift every other round; the max survives
		if i%2 == 1 {
			shifts = shifts[1:]
		}
	}
}
