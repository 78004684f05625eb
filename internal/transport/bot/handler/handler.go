package handler

import (
	"context"

	"insurance_desk/internal/domain/entity"
)

const defaultPageSize = 8

type TicketService interface {
	Get(ctx context.Context, id string) (entity.HandoffTicket, error)
}

type Catalog interface {
	List() []entity.Policy
	Stats() []entity.CategoryStat
	Len() int
}

type Handler struct {
	tickets  TicketService
	catalog  Catalog
	pageSize int
}

func New(tickets TicketService, catalog Catalog) *Handler {
	return &Handler{
		tickets:  tickets,
		catalog:  catalog,
		pageSize: defaultPageSize,
	}
}
