package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"insurance_desk/internal/transport/bot/middleware"
)

type callbackRoute struct {
	handle    th.CallbackQueryHandler
	predicate th.Predicate
}

// callbackRoutes covers every callback data the keyboards in view.go emit.
func (h *Handler) callbackRoutes() []callbackRoute {
	return []callbackRoute{
		{handle: h.OnCatalogCallback, predicate: th.CallbackDataPrefix(catalogPagePrefix)},
		{handle: h.OnNoopCallback, predicate: th.CallbackDataEqual(callbackNoop)},
	}
}

func (h *Handler) RegisterRoutes(bh *th.BotHandler, agentChatID int64) {
	agents := bh.Group(th.AnyMessage())
	agents.Use(middleware.AgentChatOnly(agentChatID))

	agents.HandleMessage(h.OnStart, th.CommandEqual("start"))
	agents.HandleMessage(h.OnStart, th.CommandEqual("help"))
	agents.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	agents.HandleMessage(h.OnTicket, th.CommandEqual("ticket"))
	agents.HandleMessage(h.OnCatalog, th.CommandEqual("catalog"))

	callbacks := bh.Group(th.AnyCallbackQuery())
	callbacks.Use(middleware.AgentChatOnly(agentChatID))

	for _, route := range h.callbackRoutes() {
		callbacks.HandleCallbackQuery(route.handle, route.predicate)
	}
}
