package handler

import (
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"insurance_desk/internal/domain/entity"
)

const (
	catalogPagePrefix = "catalog_page:"
	callbackNoop      = "noop"
)

const (
	startMessage = "👋 <b>Insurance desk agent bot</b>\n\n" +
		"Handoff requests from the chatbot are posted here.\n\n" +
		"/ticket <code>ID</code> - show a handoff ticket\n" +
		"/catalog - browse the policy catalog\n" +
		"/status - catalog summary"

	ticketMissingArgument = "❌ Usage: /ticket <code>ID</code>"
	ticketNotFound        = "⚠️ Ticket <code>%s</code> not found"
	ticketLookupFailed    = "❌ Failed to load the ticket, try again later"
	catalogEmpty          = "📭 The catalog is empty"
)

// catalogPage renders one page of the catalog. page is clamped into
// [1, totalPages]; an empty catalog has a single empty page.
func catalogPage(policies []entity.Policy, page, pageSize int) (text string, current, totalPages int) {
	totalPages = max(1, (len(policies)+pageSize-1)/pageSize)
	current = min(max(page, 1), totalPages)

	start := min((current-1)*pageSize, len(policies))
	end := min(start+pageSize, len(policies))

	var sb strings.Builder

	fmt.Fprintf(&sb, "📚 <b>Catalog</b> (page %d/%d)\n\n", current, totalPages)

	for _, p := range policies[start:end] {
		fmt.Fprintf(&sb, "• <b>%s</b> <code>%s</code>\n", html.EscapeString(p.Name), html.EscapeString(p.ID))

		if p.Insurer != "" {
			fmt.Fprintf(&sb, "  %s, %s\n", html.EscapeString(p.Insurer), p.Category.Label())
		}
	}

	return sb.String(), current, totalPages
}

func statusText(stats []entity.CategoryStat, total int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 <b>Catalog</b>: %d policies\n\n", total)

	for _, s := range stats {
		fmt.Fprintf(&sb, "%s: %d\n", s.Category.Label(), s.Count)
	}

	return sb.String()
}

func paginationKeyboard(page, totalPages int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s%d", catalogPagePrefix, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData(callbackNoop))

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s%d", catalogPagePrefix, page+1)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
	)
}
