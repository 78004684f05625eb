package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AgentChatOnly drops updates that do not come from the agents chat.
func AgentChatOnly(chatID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if ChatID(update) == chatID {
			return ctx.Next(update)
		}

		return nil
	}
}

// ChatID is the chat an update belongs to, zero when it has none.
func ChatID(update telego.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.GetChat().ID
	default:
		return 0
	}
}
