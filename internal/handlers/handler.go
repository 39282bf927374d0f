package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/conversation"
	"telegram-shift-bot/internal/messages"
	"telegram-shift-bot/internal/service"
	"telegram-shift-bot/internal/utils"
)

// Sender is the part of *tgbotapi.BotAPI the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	Bot    Sender
	Flow   *conversation.Flow
	Shifts *service.Shifts

	isAdmin func(id int64) bool
	log     *zap.Logger
}

// New builds a Handler. isAdmin gates every message and callback.
func New(bot Sender, flow *conversation.Flow, shifts *service.Shifts, isAdmin func(id int64) bool, log *zap.Logger) *Handler {
	return &Handler{Bot: bot, Flow: flow, Shifts: shifts, isAdmin: isAdmin, log: log}
}

// Listen processes updates one at a time until ctx is done or the channel
// is closed.
func (h *Handler) Listen(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, upd)
		}
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		h.HandleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		h.HandleCallback(ctx, upd.CallbackQuery)
	}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || !h.isAdmin(msg.From.ID) {
		h.log.Debug("ignoring message from non-admin", zap.Int64("chat", msg.Chat.ID))
		return
	}

	if msg.IsCommand() && msg.Command() == "start" {
		h.HandleStart(ctx, msg)
		return
	}
	h.HandleText(ctx, msg)
}

// reply sends Markdown text; markup may be nil.
func (h *Handler) reply(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = messages.ParseMode
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := h.Bot.Send(msg)
	utils.LogFor(h.log, err, "send message", zap.Int64("chat", chatID))
}
