// Package messages renders the bot's texts. Everything here is sent with
// Telegram's legacy Markdown parse mode.
package messages

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-shift-bot/internal/models"
)

const ParseMode = tgbotapi.ModeMarkdown

const (
	Welcome = "*Добро пожаловать в напоминателя!*\n" +
		"Вам открыт доступ к админ-панели"

	MainMenu = "*Главное меню*"

	AddPrompt = "*Добавление смены*\n\n" +
		"*Шаг 1/2:* Введите время смены:\n" +
		"Например: `17:00-19:00`"

	InvalidTime = "*Неверный формат времени!*\n" +
		"Пример: `17:00-19:00`"

	InvalidUsername = "*Неверный формат!*\n" +
		"Пример: `@username`"

	EmptySchedule = "*График пуст!*\nДобавьте смены."

	EditMenuTitle   = "*Выберите смену для редактирования:*"
	DeleteMenuTitle = "*Выберите смену для удаления:*"

	ShiftNotFound      = "Смена не найдена!"
	ShiftDeletedNotice = "Смена удалена!"
	SomethingWentWrong = "Что-то пошло не так, попробуйте ещё раз."
)

// Username renders @name escaped for Markdown.
func Username(name string) string {
	return "@" + tgbotapi.EscapeText(ParseMode, name)
}

// ShiftLine is the one-line form used in lists and confirmations.
func ShiftLine(s models.Shift) string {
	return fmt.Sprintf("`%s`: %s", s.Interval(), Username(s.Username))
}

// ButtonLabel is the inline button caption for a shift.
func ButtonLabel(s models.Shift) string {
	return s.Interval() + " @" + s.Username
}

func TimeAccepted(start, end string, editing bool) string {
	if editing {
		return fmt.Sprintf("*Новое время:* `%s-%s`\n\n"+
			"*Шаг 2/2:* Новый тег менеджера:\n"+
			"Например: `@username`", start, end)
	}
	return fmt.Sprintf("*Время:* `%s-%s`\n\n"+
		"*Шаг 2/2:* Тег менеджера:\n"+
		"Например: `@username`", start, end)
}

func ShiftAdded(s models.Shift) string {
	return "*Смена добавлена!*\n\n" + ShiftLine(s)
}

func ShiftUpdated(s models.Shift) string {
	return fmt.Sprintf("*Смена %d обновлена!*\n\n%s", s.ID, ShiftLine(s))
}

func ShiftDeleted(s models.Shift) string {
	return fmt.Sprintf("*Смена удалена!*\n\n%s\n\nID: `%d`", ShiftLine(s), s.ID)
}

func EditPrompt(s models.Shift) string {
	return fmt.Sprintf("*Редактирование смены ID* `%d`\n\n"+
		"Текущее: `%s @%s`\n\n"+
		"*Шаг 1/2:* Введите новое время:\n"+
		"Например: `17:00-19:00`", s.ID, s.Interval(), s.Username)
}

// CurrentSchedule lists shifts in stored order, as shown right after an add.
func CurrentSchedule(shifts []models.Shift) string {
	var b strings.Builder
	b.WriteString("*Актуальный график:*\n\n")
	for _, s := range shifts {
		b.WriteString(ShiftLine(s))
		b.WriteByte('\n')
	}
	return b.String()
}

// ScheduleTable renders a monospace table. Callers pass shifts already sorted
// by start time.
func ScheduleTable(sorted []models.Shift) string {
	if len(sorted) == 0 {
		return "*График пуст*\n\nНажмите «Добавить смену»"
	}

	var b strings.Builder
	b.WriteString("*График дежурств:*\n```\n")
	fmt.Fprintf(&b, "%-12s %-15s\n", "Время", "Менеджер")
	fmt.Fprintf(&b, "%s %s\n", strings.Repeat("-", 12), strings.Repeat("-", 15))
	for _, s := range sorted {
		fmt.Fprintf(&b, "%-12s @%-15s\n", s.Interval(), s.Username)
	}
	b.WriteString("```")
	return b.String()
}

// Announcement is the group post for a shift boundary. The outgoing reminder
// is added only when prev is set and is someone else.
func Announcement(current models.Shift, prev string, hasPrev bool) string {
	text := fmt.Sprintf("*Смена ответственного!*\n%s твоя очередь дежурить в интервале %s",
		Username(current.Username), current.Interval())
	if hasPrev && prev != current.Username {
		text += fmt.Sprintf("\n%s необходимо актуализировать информацию по незакрытым прелидам!",
			Username(prev))
	}
	return text
}
