package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/infrastructure/persistence"
	"insurance_desk/internal/infrastructure/queue"
	"insurance_desk/internal/worker"
)

type fakeNotifier struct {
	err  error
	sent chan entity.HandoffTicket
}

func newFakeNotifier(err error) *fakeNotifier {
	return &fakeNotifier{err: err, sent: make(chan entity.HandoffTicket, 10)}
}

func (n *fakeNotifier) SendTicket(_ context.Context, ticket entity.HandoffTicket) error {
	n.sent <- ticket

	return n.err
}

func seed(t *testing.T) (*persistence.MemoryHandoffRepository, entity.HandoffTicket) {
	t.Helper()

	repo := persistence.NewMemoryHandoffRepository()
	ticket := entity.HandoffTicket{
		ID:        "cv3k9a2q",
		Reason:    "call me",
		Status:    entity.TicketCreated,
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.Create(context.Background(), ticket))

	return repo, ticket
}

func TestHandoffNotifier_ProcessTask(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()

	repo, ticket := seed(t)
	notifier := newFakeNotifier(nil)
	w := worker.NewHandoffNotifier(repo, notifier)

	task, err := queue.NewHandoffNotifyTask(ticket.ID, 3)
	r.NoError(err)

	r.NoError(w.ProcessTask(ctx, task))
	r.Len(notifier.sent, 1)

	stored, err := repo.GetByID(ctx, ticket.ID)
	r.NoError(err)
	r.Equal(entity.TicketForwarded, stored.Status)
	r.NotNil(stored.ForwardedAt)

	// A retried task for a forwarded ticket does not notify twice.
	r.NoError(w.ProcessTask(ctx, task))
	r.Len(notifier.sent, 1)
}

func TestHandoffNotifier_ProcessTask_Errors(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()

	repo, ticket := seed(t)

	missing, err := queue.NewHandoffNotifyTask("unknown1", 3)
	r.NoError(err)

	err = worker.NewHandoffNotifier(repo, newFakeNotifier(nil)).ProcessTask(ctx, missing)
	r.ErrorIs(err, asynq.SkipRetry)

	err = worker.NewHandoffNotifier(repo, newFakeNotifier(nil)).
		ProcessTask(ctx, asynq.NewTask(queue.TypeHandoffNotify, []byte("{}")))
	r.ErrorIs(err, asynq.SkipRetry)

	task, err := queue.NewHandoffNotifyTask(ticket.ID, 3)
	r.NoError(err)

	err = worker.NewHandoffNotifier(repo, newFakeNotifier(errors.New("telegram is down"))).ProcessTask(ctx, task)
	r.Error(err)
	r.NotErrorIs(err, asynq.SkipRetry)

	stored, err := repo.GetByID(ctx, ticket.ID)
	r.NoError(err)
	r.Equal(entity.TicketCreated, stored.Status)
}

func TestHandoffNotifier_Dispatch(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	repo, ticket := seed(t)
	notifier := newFakeNotifier(nil)

	ctx, cancel := context.WithCancel(context.Background())
	r.NoError(worker.NewHandoffNotifier(repo, notifier).Dispatch(ctx, ticket))
	// The request context ending must not abort delivery.
	cancel()

	select {
	case sent := <-notifier.sent:
		r.Equal(ticket.ID, sent.ID)
	case <-time.After(5 * time.Second):
		r.Fail("ticket was not sent")
	}

	r.Eventually(func() bool {
		stored, err := repo.GetByID(context.Background(), ticket.ID)

		return err == nil && stored.Status == entity.TicketForwarded
	}, 5*time.Second, 10*time.Millisecond)
}
