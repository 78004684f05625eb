package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"insurance_desk/internal/domain"
	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/httpx/reply"
	"insurance_desk/pkg/httpx/req"
	"insurance_desk/pkg/rest"
)

type handoffService interface {
	Create(ctx context.Context, reason string, profile map[string]any) (entity.HandoffTicket, error)
	Get(ctx context.Context, id string) (entity.HandoffTicket, error)
}

type HandoffServer struct {
	handoffService handoffService
}

func NewHandoffServer(handoffService handoffService) HandoffServer {
	return HandoffServer{
		handoffService: handoffService,
	}
}

func (s HandoffServer) postHandoff(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.HandoffRequest

	if err := req.Read(w, r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	ticket, err := s.handoffService.Create(ctx, request.Reason, request.CustomerProfile)
	if err != nil {
		return fmt.Errorf("handoffService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.HandoffResponse{
		Status:   string(entity.TicketCreated),
		TicketID: ticket.ID,
	})

	return nil
}

func (s HandoffServer) getHandoff(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	id := chi.URLParam(r, "ticketID")

	ticket, err := s.handoffService.Get(ctx, id)
	if err != nil {
		if domain.HasCode(err, errcodes.TicketNotFound) {
			return failure.NewNotFoundError(
				err.Error(),
				failure.WithCode(errcodes.TicketNotFound),
				failure.WithDescription("Ticket not found"),
			)
		}

		return fmt.Errorf("handoffService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTTicket(ticket))

	return nil
}
