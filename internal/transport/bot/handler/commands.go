package handler

import (
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"insurance_desk/internal/domain"
	"insurance_desk/internal/infrastructure/notifier"
	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, statusText(h.catalog.Stats(), h.catalog.Len()))
}

// OnTicket shows a ticket by id.
// Usage: /ticket 9m4e2mr0
func (h *Handler) OnTicket(ctx *th.Context, msg telego.Message) error {
	args := strings.Fields(msg.Text)
	if len(args) < 2 {
		return h.sendHTML(ctx, msg.Chat.ID, ticketMissingArgument)
	}

	id := args[1]

	ticket, err := h.tickets.Get(ctx, id)
	if err != nil {
		if domain.HasCode(err, errcodes.TicketNotFound) {
			return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(ticketNotFound, html.EscapeString(id)))
		}

		logger(ctx).Error("tickets.Get", logx.Error(err))

		return h.sendHTML(ctx, msg.Chat.ID, ticketLookupFailed)
	}

	return h.sendHTML(ctx, msg.Chat.ID, notifier.FormatTicket(ticket))
}

func (h *Handler) OnCatalog(ctx *th.Context, msg telego.Message) error {
	policies := h.catalog.List()
	if len(policies) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, catalogEmpty)
	}

	text, page, totalPages := catalogPage(policies, 1, h.pageSize)

	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: paginationKeyboard(page, totalPages),
	})
	if err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	if err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
