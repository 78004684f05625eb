// Package queue publishes background tasks to asynq.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

const (
	TypeHandoffNotify = "handoff:notify"
	QueueHandoff      = "handoff"

	defaultMaxRetry = 10
	taskTimeout     = 30 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var ErrInvalidPayload = errors.New("invalid task payload")

type HandoffPayload struct {
	TicketID string `json:"ticket_id"`
}

// NewHandoffNotifyTask uses the ticket id as the task id, so a ticket is
// queued at most once while its task is pending.
func NewHandoffNotifyTask(ticketID string, maxRetry int) (*asynq.Task, error) {
	payload, err := json.Marshal(HandoffPayload{TicketID: ticketID})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeHandoffNotify,
		payload,
		asynq.TaskID(ticketID),
		asynq.Queue(QueueHandoff),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(taskTimeout),
	), nil
}

func ParseHandoffNotifyTask(task *asynq.Task) (HandoffPayload, error) {
	var payload HandoffPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return HandoffPayload{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if payload.TicketID == "" {
		return HandoffPayload{}, fmt.Errorf("%w: empty ticket id", ErrInvalidPayload)
	}

	return payload, nil
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher queues handoff tickets for the notifier worker.
type Dispatcher struct {
	client   enqueuer
	maxRetry int
}

func NewDispatcher(client *asynq.Client) *Dispatcher {
	return newDispatcher(client)
}

func newDispatcher(client enqueuer) *Dispatcher {
	return &Dispatcher{client: client, maxRetry: defaultMaxRetry}
}

func (d *Dispatcher) WithMaxRetry(maxRetry int) *Dispatcher {
	d.maxRetry = maxRetry

	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, ticket entity.HandoffTicket) error {
	task, err := NewHandoffNotifyTask(ticket.ID, d.maxRetry)
	if err != nil {
		return fmt.Errorf("NewHandoffNotifyTask: %w", err)
	}

	info, err := d.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger(ctx).Warn("handoff task already queued", slog.String(logx.FieldTicketID, ticket.ID))

		return nil
	}

	if err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Debug(
		"handoff task queued",
		slog.String(logx.FieldTicketID, ticket.ID),
		slog.String(logx.FieldTaskType, info.Type),
	)

	return nil
}
