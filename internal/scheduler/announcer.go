package scheduler

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-shift-bot/internal/messages"
)

//go:generate mockgen -source=announcer.go -destination=../mocks/announcer_mock.go -package=mocks

// Announcer publishes a handover text to the duty group.
type Announcer interface {
	Announce(ctx context.Context, text string) error
}

// requester is the part of *tgbotapi.BotAPI used for raw calls.
type requester interface {
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

// GroupAnnouncer posts into a Telegram group, optionally inside a forum topic.
type GroupAnnouncer struct {
	api      requester
	chatID   int64
	threadID int
}

func NewGroupAnnouncer(api requester, chatID int64, threadID int) *GroupAnnouncer {
	return &GroupAnnouncer{api: api, chatID: chatID, threadID: threadID}
}

// Announce sends text as Markdown. The v5 client has no topic field on
// MessageConfig, so the request is assembled by hand.
func (a *GroupAnnouncer) Announce(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := tgbotapi.Params{
		"chat_id": strconv.FormatInt(a.chatID, 10),
		"text":    text,
	}
	params.AddNonEmpty("parse_mode", messages.ParseMode)
	params.AddBool("disable_web_page_preview", true)
	params.AddNonZero("message_thread_id", a.threadID)

	_, err := a.api.MakeRequest("sendMessage", params)
	return err
}
