package persistence

import (
	"context"
	"maps"
	"sync"
	"time"

	"insurance_desk/internal/domain"
	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/errcodes"
)

// MemoryHandoffRepository keeps tickets in process memory. It is used when no
// postgres DSN is configured; tickets are lost on restart.
type MemoryHandoffRepository struct {
	mu      sync.RWMutex
	tickets map[string]entity.HandoffTicket
}

func NewMemoryHandoffRepository() *MemoryHandoffRepository {
	return &MemoryHandoffRepository{tickets: make(map[string]entity.HandoffTicket)}
}

func (r *MemoryHandoffRepository) Create(_ context.Context, ticket entity.HandoffTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[ticket.ID]; ok {
		return domain.NewError(errcodes.HandoffStore, "ticket already exists")
	}

	ticket.CustomerProfile = maps.Clone(ticket.CustomerProfile)
	r.tickets[ticket.ID] = ticket

	return nil
}

func (r *MemoryHandoffRepository) GetByID(_ context.Context, id string) (entity.HandoffTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return entity.HandoffTicket{}, domain.NewError(errcodes.TicketNotFound, "ticket not found")
	}

	ticket.CustomerProfile = maps.Clone(ticket.CustomerProfile)

	return ticket, nil
}

func (r *MemoryHandoffRepository) MarkForwarded(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return domain.NewError(errcodes.TicketNotFound, "ticket not found")
	}

	if ticket.Status == entity.TicketForwarded {
		return nil
	}

	ticket.Status = entity.TicketForwarded
	ticket.ForwardedAt = &at
	r.tickets[id] = ticket

	return nil
}
