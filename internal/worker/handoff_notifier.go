package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"insurance_desk/internal/domain"
	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/infrastructure/queue"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/logx"
)

const inlineForwardTimeout = 30 * time.Second

type TicketRepository interface {
	GetByID(ctx context.Context, id string) (entity.HandoffTicket, error)
	MarkForwarded(ctx context.Context, id string, at time.Time) error
}

type Notifier interface {
	SendTicket(ctx context.Context, ticket entity.HandoffTicket) error
}

// HandoffNotifier delivers recorded tickets to the human agents.
type HandoffNotifier struct {
	tickets  TicketRepository
	notifier Notifier
	now      func() time.Time
}

func NewHandoffNotifier(tickets TicketRepository, notifier Notifier) *HandoffNotifier {
	return &HandoffNotifier{
		tickets:  tickets,
		notifier: notifier,
		now:      time.Now,
	}
}

// Forward sends the ticket and records the forwarding time. A ticket that was
// already forwarded is not sent again.
func (w *HandoffNotifier) Forward(ctx context.Context, ticket entity.HandoffTicket) error {
	if ticket.Status == entity.TicketForwarded {
		return nil
	}

	if err := w.notifier.SendTicket(ctx, ticket); err != nil {
		return domain.WrapError(err, errcodes.HandoffForwarding, "failed to send ticket")
	}

	if err := w.tickets.MarkForwarded(ctx, ticket.ID, w.now().UTC()); err != nil {
		return fmt.Errorf("tickets.MarkForwarded: %w", err)
	}

	logger(ctx).Info("handoff ticket forwarded", slog.String(logx.FieldTicketID, ticket.ID))

	return nil
}

// ProcessTask handles queue.TypeHandoffNotify tasks.
func (w *HandoffNotifier) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseHandoffNotifyTask(task)
	if err != nil {
		return fmt.Errorf("queue.ParseHandoffNotifyTask: %w: %w", err, asynq.SkipRetry)
	}

	ctx = withTicketLogger(ctx, payload.TicketID)

	ticket, err := w.tickets.GetByID(ctx, payload.TicketID)
	if err != nil {
		if domain.HasCode(err, errcodes.TicketNotFound) {
			return fmt.Errorf("tickets.GetByID: %w: %w", err, asynq.SkipRetry)
		}

		return fmt.Errorf("tickets.GetByID: %w", err)
	}

	return w.Forward(ctx, ticket)
}

// Dispatch forwards the ticket in the background without a queue. It is the
// dispatcher used when redis is not configured; delivery is not retried.
func (w *HandoffNotifier) Dispatch(ctx context.Context, ticket entity.HandoffTicket) error {
	ctx = withTicketLogger(context.WithoutCancel(ctx), ticket.ID)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, inlineForwardTimeout)
		defer cancel()

		if err := w.Forward(ctx, ticket); err != nil {
			logger(ctx).Error("handoff forwarding failed", logx.Error(err))
		}
	}()

	return nil
}

func withTicketLogger(ctx context.Context, ticketID string) context.Context {
	return contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldTicketID, ticketID)))
}
