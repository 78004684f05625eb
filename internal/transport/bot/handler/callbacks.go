package handler

import (
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"insurance_desk/pkg/logx"
)

// OnCatalogCallback switches the catalog message to another page. The callback
// data is "catalog_page:<number>".
func (h *Handler) OnCatalogCallback(ctx *th.Context, query telego.CallbackQuery) error {
	page, err := strconv.Atoi(strings.TrimPrefix(query.Data, catalogPagePrefix))
	if err != nil {
		page = 1
	}

	text, page, totalPages := catalogPage(h.catalog.List(), page, h.pageSize)

	// Telegram rejects an edit that does not change the message, e.g. a double
	// tap on the same page. It is harmless.
	_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: paginationKeyboard(page, totalPages),
	})
	if err != nil {
		logger(ctx).Debug("bot.EditMessageText", logx.Error(err))
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID)) //nolint:wrapcheck
}

// OnNoopCallback answers taps on the page counter so the client stops
// showing the loading state.
func (h *Handler) OnNoopCallback(ctx *th.Context, query telego.CallbackQuery) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID)) //nolint:wrapcheck
}
