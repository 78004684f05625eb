// Package bot serves commands of the human agents chat: ticket lookup and
// catalog browsing next to the handoff notifications.
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"insurance_desk/internal/transport/bot/handler"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

const longPollingTimeoutSeconds = 60

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Bot struct {
	botHandler *th.BotHandler
}

// New starts long polling right away; updates stop when ctx is cancelled.
func New(ctx context.Context, token string, agentChatID int64, h *handler.Handler) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	updates, err := bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeoutSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		return nil, fmt.Errorf("th.NewBotHandler: %w", err)
	}

	h.RegisterRoutes(botHandler, agentChatID)

	return &Bot{
		botHandler: botHandler,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("botHandler.Start", logx.Error(err))
		}
	}()

	logger(ctx).Info("agent bot started")

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	logger(ctx).Info("agent bot stopped")

	return nil
}
