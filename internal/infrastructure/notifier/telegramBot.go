package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"insurance_desk/internal/domain/entity"
)

const maxProfileLen = 3000

// TelegramBot posts handoff tickets into the human agents chat.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (b *TelegramBot) SendTicket(ctx context.Context, ticket entity.HandoffTicket) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		FormatTicket(ticket),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

// SendText sends a plain text message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

// FormatTicket renders a ticket as Telegram HTML.
func FormatTicket(ticket entity.HandoffTicket) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🆘 <b>Handoff request</b> <code>%s</code>\n\n", html.EscapeString(ticket.ID))
	fmt.Fprintf(&sb, "💬 <b>Reason:</b> %s\n", html.EscapeString(ticket.Reason))

	if ticket.SessionID != "" {
		fmt.Fprintf(&sb, "🔗 <b>Session:</b> <code>%s</code>\n", html.EscapeString(ticket.SessionID))
	}

	fmt.Fprintf(&sb, "🕒 <b>Created:</b> %s\n", ticket.CreatedAt.Format("2006-01-02 15:04 MST"))

	if len(ticket.CustomerProfile) > 0 {
		profile, err := json.MarshalIndent(ticket.CustomerProfile, "", "  ")
		if err != nil {
			profile = []byte(fmt.Sprint(ticket.CustomerProfile))
		}

		text := string(profile)
		if len(text) > maxProfileLen {
			text = text[:maxProfileLen] + "\n..."
		}

		fmt.Fprintf(&sb, "\n👤 <b>Profile:</b>\n<pre>%s</pre>", html.EscapeString(text))
	}

	return sb.String()
}
