package notifier

import (
	"context"
	"log/slog"

	jsoniter "github.com/json-iterator/go"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// LogNotifier writes tickets to the log. It stands in for the agent chat when
// no bot token is configured.
type LogNotifier struct{}

func (LogNotifier) SendTicket(ctx context.Context, ticket entity.HandoffTicket) error {
	logger(ctx).Warn(
		"handoff ticket not delivered to agents, bot is not configured",
		slog.String(logx.FieldTicketID, ticket.ID),
		slog.String("reason", ticket.Reason),
	)

	return nil
}
