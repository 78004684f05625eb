package handoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/xid"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

const ticketIDLen = 8

//nolint:gochecknoglobals
var ticketsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "insurance_desk",
		Subsystem: "handoff",
		Name:      "tickets_total",
		Help:      "Handoff tickets by dispatch outcome.",
	},
	[]string{"dispatch"},
)

type Repository interface {
	Create(ctx context.Context, ticket entity.HandoffTicket) error
	GetByID(ctx context.Context, id string) (entity.HandoffTicket, error)
	MarkForwarded(ctx context.Context, id string, at time.Time) error
}

// Dispatcher hands a recorded ticket over to the human agent queue.
type Dispatcher interface {
	Dispatch(ctx context.Context, ticket entity.HandoffTicket) error
}

type Service struct {
	repo       Repository
	dispatcher Dispatcher
	now        func() time.Time
}

func NewService(repo Repository, dispatcher Dispatcher) *Service {
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now

	return s
}

// Create records the ticket and dispatches it. A dispatch failure is logged
// and does not fail the call: the ticket is already stored and an agent can
// pick it up from there.
func (s *Service) Create(
	ctx context.Context,
	reason string,
	profile map[string]any,
) (entity.HandoffTicket, error) {
	ticket := entity.HandoffTicket{
		ID:              NewTicketID(),
		Reason:          reason,
		CustomerProfile: profile,
		Status:          entity.TicketCreated,
		CreatedAt:       s.now().UTC(),
	}

	if sessionID, err := contextx.SessionIDFromContext(ctx); err == nil {
		ticket.SessionID = sessionID.String()
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return entity.HandoffTicket{}, fmt.Errorf("repo.Create: %w", err)
	}

	log := logger(ctx).With(slog.String(logx.FieldTicketID, ticket.ID))

	if err := s.dispatcher.Dispatch(ctx, ticket); err != nil {
		ticketsTotal.WithLabelValues("failed").Inc()
		log.Error("dispatcher.Dispatch", logx.Error(err))

		return ticket, nil
	}

	ticketsTotal.WithLabelValues("ok").Inc()
	log.Info("handoff ticket created")

	return ticket, nil
}

func (s *Service) Get(ctx context.Context, id string) (entity.HandoffTicket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.HandoffTicket{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	return ticket, nil
}

// NewTicketID returns the last characters of a fresh xid. They carry the
// process counter, so ids stay unique within a process.
func NewTicketID() string {
	id := xid.New().String()

	return id[len(id)-ticketIDLen:]
}
