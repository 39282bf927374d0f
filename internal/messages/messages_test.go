package messages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"telegram-shift-bot/internal/models"
)

func TestAnnouncement(t *testing.T) {
	bob := models.Shift{ID: 2, Username: "bob", StartTime: "17:00", EndTime: "23:00"}

	tests := []struct {
		name     string
		prev     string
		hasPrev  bool
		wantLine bool
	}{
		{name: "different predecessor", prev: "alice", hasPrev: true, wantLine: true},
		{name: "same person keeps the shift", prev: "bob", hasPrev: true, wantLine: false},
		{name: "no predecessor", hasPrev: false, wantLine: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Announcement(bob, tt.prev, tt.hasPrev)

			assert.True(t, strings.HasPrefix(got, "*Смена ответственного!*\n"))
			assert.Contains(t, got, "@bob твоя очередь дежурить в интервале 17:00-23:00")
			if tt.wantLine {
				assert.Contains(t, got, "\n@"+tt.prev+" необходимо актуализировать информацию по незакрытым прелидам!")
			} else {
				assert.NotContains(t, got, "необходимо актуализировать")
			}
		})
	}
}

func TestAnnouncement_EscapesUsernames(t *testing.T) {
	got := Announcement(models.Shift{Username: "night_owl", StartTime: "23:00", EndTime: "07:00"}, "day_bird", true)
	assert.Contains(t, got, `@night\_owl твоя очередь`)
	assert.Contains(t, got, `@day\_bird необходимо`)
}

func TestScheduleTable(t *testing.T) {
	assert.Equal(t, "*График пуст*\n\nНажмите «Добавить смену»", ScheduleTable(nil))

	got := ScheduleTable([]models.Shift{
		{ID: 1, Username: "alice", StartTime: "09:00", EndTime: "17:00"},
		{ID: 2, Username: "bob", StartTime: "17:00", EndTime: "23:00"},
	})
	lines := strings.Split(got, "\n")

	assert.Equal(t, "*График дежурств:*", lines[0])
	assert.Equal(t, "```", lines[1])
	assert.Equal(t, "09:00-17:00  @alice          ", lines[4])
	assert.Equal(t, "17:00-23:00  @bob            ", lines[5])
	assert.Equal(t, "```", lines[6])
}

func TestCurrentSchedule_KeepsStoredOrder(t *testing.T) {
	got := CurrentSchedule([]models.Shift{
		{ID: 2, Username: "bob", StartTime: "17:00", EndTime: "23:00"},
		{ID: 1, Username: "alice", StartTime: "09:00", EndTime: "17:00"},
	})
	assert.Equal(t, "*Актуальный график:*\n\n`17:00-23:00`: @bob\n`09:00-17:00`: @alice\n", got)
}

func TestShiftTexts(t *testing.T) {
	carol := models.Shift{ID: 2, Username: "carol", StartTime: "18:00", EndTime: "22:00"}

	assert.Equal(t, "*Смена добавлена!*\n\n`18:00-22:00`: @carol", ShiftAdded(carol))
	assert.Equal(t, "*Смена 2 обновлена!*\n\n`18:00-22:00`: @carol", ShiftUpdated(carol))
	assert.Contains(t, ShiftDeleted(carol), "ID: `2`")
	assert.Contains(t, EditPrompt(carol), "Текущее: `18:00-22:00 @carol`")
	assert.Equal(t, "18:00-22:00 @carol", ButtonLabel(carol))
	assert.Contains(t, TimeAccepted("18:00", "22:00", true), "Новый тег менеджера")
	assert.Contains(t, TimeAccepted("18:00", "22:00", false), "*Время:* `18:00-22:00`")
}
