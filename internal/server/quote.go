package server

import (
	"context"
	"fmt"
	"net/http"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/httpx/reply"
	"insurance_desk/pkg/httpx/req"
	"insurance_desk/pkg/rest"
)

type quoteService interface {
	Quote(ctx context.Context, profile entity.CustomerProfile) entity.Quote
}

type QuoteServer struct {
	quoteService quoteService
}

func NewQuoteServer(quoteService quoteService) QuoteServer {
	return QuoteServer{
		quoteService: quoteService,
	}
}

func (s QuoteServer) postQuote(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.QuoteRequest

	if err := req.Read(w, r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	profile, err := newDomainProfile(request)
	if err != nil {
		return fmt.Errorf("newDomainProfile: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTQuote(s.quoteService.Quote(ctx, profile)))

	return nil
}
