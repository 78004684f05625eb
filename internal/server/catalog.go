package server

import (
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/value"
	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/httpx/reply"
	"insurance_desk/pkg/rest"
)

type catalogService interface {
	List() []entity.Policy
	Get(id string) (entity.Policy, bool)
	Filter(category value.Category) []entity.Policy
	Stats() []entity.CategoryStat
	Len() int
}

type CatalogServer struct {
	catalog catalogService
}

func NewCatalogServer(catalog catalogService) CatalogServer {
	return CatalogServer{
		catalog: catalog,
	}
}

func (s CatalogServer) getPolicies(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	policies := s.catalog.List()

	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := value.ParseCategory(raw)
		if err != nil {
			return failure.NewInvalidArgumentErrorFromError(
				fmt.Errorf("value.ParseCategory: %w", err),
				failure.WithCode(errcodes.UnknownCategory),
				failure.WithDescription(err.Error()),
			)
		}

		policies = s.catalog.Filter(category)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPolicies(policies))

	return nil
}

func (s CatalogServer) getPolicy(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "policyID")

	policy, ok := s.catalog.Get(id)
	if !ok {
		return failure.NewNotFoundError(
			"policy not found: "+id,
			failure.WithCode(errcodes.PolicyNotFound),
			failure.WithDescription("Policy not found"),
		)
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTPolicy(policy))

	return nil
}

func (s CatalogServer) getCategories(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.Categories{
		Categories: newRESTCategoryStats(s.catalog.Stats()),
		Total:      s.catalog.Len(),
	})

	return nil
}
