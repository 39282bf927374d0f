package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/messages"
	"telegram-shift-bot/internal/schedule"
)

// ---------------- /start --------------------
func (h *Handler) HandleStart(_ context.Context, msg *tgbotapi.Message) {
	h.log.Info("admin opened main menu", zap.Int64("admin", msg.From.ID))
	h.sendMainMenu(msg.Chat.ID)
}

func (h *Handler) sendMainMenu(chatID int64) {
	h.reply(chatID, messages.Welcome, mainMenuKeyboard())
}

// handleCancel serves both "Отмена" and "Главное меню".
func (h *Handler) handleCancel(ctx context.Context, msg *tgbotapi.Message) {
	h.Flow.Cancel(ctx, msg.From.ID)
	h.log.Info("admin left the dialog", zap.Int64("admin", msg.From.ID))
	h.sendMainMenu(msg.Chat.ID)
}

func (h *Handler) handleAdd(ctx context.Context, msg *tgbotapi.Message) {
	if err := h.Flow.StartAdd(ctx, msg.From.ID); err != nil {
		h.log.Error("start add flow", zap.Int64("admin", msg.From.ID), zap.Error(err))
		h.reply(msg.Chat.ID, messages.SomethingWentWrong, nil)
		return
	}
	h.reply(msg.Chat.ID, messages.AddPrompt, cancelKeyboard())
}

func (h *Handler) handleSchedule(ctx context.Context, msg *tgbotapi.Message) {
	shifts, err := h.Shifts.List(ctx)
	if err != nil {
		h.log.Error("list schedule", zap.Error(err))
		h.reply(msg.Chat.ID, messages.SomethingWentWrong, nil)
		return
	}
	h.log.Info("admin requested schedule", zap.Int64("admin", msg.From.ID), zap.Int("shifts", len(shifts)))
	h.reply(msg.Chat.ID, messages.ScheduleTable(schedule.SortByStart(shifts)), scheduleMenuKeyboard())
}

func (h *Handler) handleEditMenu(ctx context.Context, msg *tgbotapi.Message) {
	h.sendShiftList(ctx, msg, messages.EditMenuTitle, cbEditPrefix)
}

func (h *Handler) handleDeleteMenu(ctx context.Context, msg *tgbotapi.Message) {
	h.sendShiftList(ctx, msg, messages.DeleteMenuTitle, cbDeletePrefix)
}

func (h *Handler) sendShiftList(ctx context.Context, msg *tgbotapi.Message, title, prefix string) {
	shifts, err := h.Shifts.List(ctx)
	if err != nil {
		h.log.Error("list schedule", zap.Error(err))
		h.reply(msg.Chat.ID, messages.SomethingWentWrong, nil)
		return
	}
	if len(shifts) == 0 {
		h.reply(msg.Chat.ID, messages.EmptySchedule, mainMenuKeyboard())
		return
	}
	h.reply(msg.Chat.ID, title, shiftListKeyboard(shifts, prefix))
}
