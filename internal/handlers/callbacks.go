package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/messages"
	"telegram-shift-bot/internal/service"
	"telegram-shift-bot/internal/utils"
)

func (h *Handler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	notice := ""
	// always answer callback
	defer func() {
		_, err := h.Bot.Request(tgbotapi.NewCallback(cq.ID, notice))
		utils.LogFor(h.log, err, "answer callback", zap.String("data", cq.Data))
	}()

	if cq.From == nil || !h.isAdmin(cq.From.ID) || cq.Message == nil {
		h.log.Debug("ignoring callback", zap.String("data", cq.Data))
		return
	}
	h.log.Info("inline callback", zap.String("data", cq.Data), zap.Int64("admin", cq.From.ID))

	for _, r := range callbackRoutes {
		if r.exact && cq.Data == r.prefix {
			notice = r.action(h, ctx, cq, "")
			return
		}
		if !r.exact && strings.HasPrefix(cq.Data, r.prefix) {
			notice = r.action(h, ctx, cq, strings.TrimPrefix(cq.Data, r.prefix))
			return
		}
	}
	h.log.Warn("unknown callback", zap.String("data", cq.Data))
}

func (h *Handler) handleBackAdmin(ctx context.Context, cq *tgbotapi.CallbackQuery, _ string) string {
	chatID := cq.Message.Chat.ID

	h.Flow.Cancel(ctx, cq.From.ID)
	h.editText(chatID, cq.Message.MessageID, messages.MainMenu, nil)
	h.sendMainMenu(chatID)
	return ""
}

func (h *Handler) handleEditCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, arg string) string {
	id, err := strconv.Atoi(arg)
	if err != nil {
		h.log.Warn("bad shift id in callback", zap.String("data", cq.Data))
		return ""
	}

	shift, err := h.Flow.StartEdit(ctx, cq.From.ID, id)
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		h.log.Info("shift to edit not found", zap.Int("shift", id))
		return messages.ShiftNotFound
	case err != nil:
		h.log.Error("start edit flow", zap.Int("shift", id), zap.Error(err))
		return messages.SomethingWentWrong
	}

	kb := inlineCancelKeyboard()
	h.editText(cq.Message.Chat.ID, cq.Message.MessageID, messages.EditPrompt(shift), &kb)
	return ""
}

func (h *Handler) handleDeleteCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, arg string) string {
	id, err := strconv.Atoi(arg)
	if err != nil {
		h.log.Warn("bad shift id in callback", zap.String("data", cq.Data))
		return ""
	}

	removed, err := h.Shifts.Delete(ctx, id)
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		h.log.Info("shift to delete not found", zap.Int("shift", id))
		return messages.ShiftNotFound
	case err != nil:
		h.log.Error("delete shift", zap.Int("shift", id), zap.Error(err))
		return messages.SomethingWentWrong
	}

	h.editText(cq.Message.Chat.ID, cq.Message.MessageID, messages.ShiftDeleted(removed), nil)
	return messages.ShiftDeletedNotice
}

// editText replaces the text of a bot message; a nil markup drops the inline
// keyboard.
func (h *Handler) editText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = messages.ParseMode
	edit.ReplyMarkup = markup
	_, err := h.Bot.Send(edit)
	utils.LogFor(h.log, err, "edit message", zap.Int64("chat", chatID), zap.Int("message", messageID))
}
