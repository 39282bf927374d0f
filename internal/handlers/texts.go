package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/conversation"
	"telegram-shift-bot/internal/messages"
)

func (h *Handler) HandleText(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Text == "" {
		h.log.Debug("ignoring non-text message", zap.Int64("admin", msg.From.ID))
		return
	}

	text := strings.TrimSpace(msg.Text)
	admin := msg.From.ID
	chatID := msg.Chat.ID

	if action, ok := menuActions[text]; ok {
		action(h, ctx, msg)
		return
	}

	res, err := h.Flow.Input(ctx, admin, text)
	if err != nil {
		h.log.Error("conversation input", zap.Int64("admin", admin), zap.Error(err))
		h.reply(chatID, messages.SomethingWentWrong, nil)
		return
	}

	switch res.Kind {
	case conversation.ResultNoSession:
		h.log.Debug("text outside of a dialog", zap.Int64("admin", admin))
	case conversation.ResultInvalidTime:
		h.reply(chatID, messages.InvalidTime, nil)
	case conversation.ResultInvalidUsername:
		h.reply(chatID, messages.InvalidUsername, nil)
	case conversation.ResultTimeAccepted:
		h.reply(chatID, messages.TimeAccepted(res.Shift.StartTime, res.Shift.EndTime, res.Stage.Editing()), cancelKeyboard())
	case conversation.ResultShiftAdded:
		h.reply(chatID, messages.ShiftAdded(res.Shift), mainMenuKeyboard())
		if len(res.Schedule) > 0 {
			h.reply(chatID, messages.CurrentSchedule(res.Schedule), nil)
		}
	case conversation.ResultShiftUpdated:
		h.reply(chatID, messages.ShiftUpdated(res.Shift), mainMenuKeyboard())
	case conversation.ResultShiftNotFound:
		h.reply(chatID, messages.ShiftNotFound, mainMenuKeyboard())
	}
}
