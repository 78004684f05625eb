package handoff_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/service/handoff"
	"insurance_desk/pkg/contextx"
)

var errBoom = errors.New("boom")

type fakeRepo struct {
	mu        sync.Mutex
	tickets   map[string]entity.HandoffTicket
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tickets: map[string]entity.HandoffTicket{}}
}

func (r *fakeRepo) Create(_ context.Context, ticket entity.HandoffTicket) error {
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets[ticket.ID] = ticket

	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (entity.HandoffTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tickets[id]
	if !ok {
		return entity.HandoffTicket{}, errBoom
	}

	return t, nil
}

func (r *fakeRepo) MarkForwarded(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tickets[id]
	t.Status = entity.TicketForwarded
	t.ForwardedAt = &at
	r.tickets[id] = t

	return nil
}

type fakeDispatcher struct {
	err        error
	dispatched []entity.HandoffTicket
}

func (d *fakeDispatcher) Dispatch(_ context.Context, ticket entity.HandoffTicket) error {
	d.dispatched = append(d.dispatched, ticket)

	return d.err
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		createErr   error
		dispatchErr error
		wantErr     bool
	}{
		{name: "dispatched"},
		{name: "dispatch failure is not fatal", dispatchErr: errBoom},
		{name: "store failure", createErr: errBoom, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)

			repo := newFakeRepo()
			repo.createErr = tt.createErr
			dispatcher := &fakeDispatcher{err: tt.dispatchErr}

			svc := handoff.NewService(repo, dispatcher).WithClock(func() time.Time { return now })

			ctx := contextx.WithSessionID(context.Background(), "chat-42")
			profile := map[string]any{"age_band": "25-35"}

			ticket, err := svc.Create(ctx, "wants a call back", profile)
			if tt.wantErr {
				r.ErrorIs(err, errBoom)
				r.Empty(dispatcher.dispatched)

				return
			}

			r.NoError(err)
			r.Len(ticket.ID, 8)
			r.Equal(entity.TicketCreated, ticket.Status)
			r.Equal("chat-42", ticket.SessionID)
			r.Equal(now, ticket.CreatedAt)
			r.Equal(profile, ticket.CustomerProfile)

			stored, err := svc.Get(ctx, ticket.ID)
			r.NoError(err)
			r.Equal(ticket, stored)
			r.Equal([]entity.HandoffTicket{ticket}, dispatcher.dispatched)
		})
	}
}

func TestNewTicketID(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	seen := make(map[string]struct{})

	for range 1000 {
		id := handoff.NewTicketID()
		r.Len(id, 8)
		r.NotContains(seen, id)

		seen[id] = struct{}{}
	}
}
