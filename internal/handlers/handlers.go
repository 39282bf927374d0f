package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnAddShift = "Добавить смену"
	btnSchedule = "График"
	btnEdit     = "Редактировать"
	btnDelete   = "Удалить"
	btnCancel   = "Отмена"
	btnMainMenu = "Главное меню"
	btnBack     = "Назад"
)

const (
	cbBackAdmin    = "back_admin"
	cbEditPrefix   = "edit_"
	cbDeletePrefix = "del_"
)

type menuAction func(h *Handler, ctx context.Context, msg *tgbotapi.Message)

// menuActions routes reply-keyboard labels. A label always wins over a
// pending dialog.
var menuActions = map[string]menuAction{
	btnAddShift: (*Handler).handleAdd,
	btnSchedule: (*Handler).handleSchedule,
	btnEdit:     (*Handler).handleEditMenu,
	btnDelete:   (*Handler).handleDeleteMenu,
	btnCancel:   (*Handler).handleCancel,
	btnMainMenu: (*Handler).handleCancel,
}

// callbackAction returns the text shown in the callback answer, usually "".
type callbackAction func(h *Handler, ctx context.Context, cq *tgbotapi.CallbackQuery, arg string) string

type callbackRoute struct {
	prefix string
	exact  bool
	action callbackAction
}

var callbackRoutes = []callbackRoute{
	{prefix: cbBackAdmin, exact: true, action: (*Handler).handleBackAdmin},
	{prefix: cbEditPrefix, action: (*Handler).handleEditCallback},
	{prefix: cbDeletePrefix, action: (*Handler).handleDeleteCallback},
}
