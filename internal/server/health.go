package server

import (
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/httpx/reply"
	"insurance_desk/pkg/rest"
)

type HealthServer struct {
	name    string
	version string
	catalog interface{ Len() int }
}

func NewHealthServer(name, version string, catalog interface{ Len() int }) HealthServer {
	return HealthServer{
		name:    name,
		version: version,
		catalog: catalog,
	}
}

// getHealth answers liveness. An empty catalog is reported, not failed: the
// service still serves handoff requests.
func (s HealthServer) getHealth(w http.ResponseWriter, r *http.Request) error {
	status := "ok"

	policies := s.catalog.Len()
	if policies == 0 {
		status = "degraded"
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.Health{
		Status:   status,
		Name:     s.name,
		Version:  s.version,
		Policies: policies,
	})

	return nil
}

func notFound(_ http.ResponseWriter, r *http.Request) error {
	return failure.NewNotFoundError(
		"route not found: "+r.URL.Path,
		failure.WithCode(errcodes.NotFound),
		failure.WithDescription("Route not found"),
	)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusMethodNotAllowed, reply.ErrorResponse{
		Code:    errcodes.MethodNotAllowed.String(),
		Message: r.Method + " is not allowed on " + r.URL.Path,
	})

	return nil
}
