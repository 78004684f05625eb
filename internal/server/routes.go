package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"insurance_desk/pkg/httpx/reply"
	"insurance_desk/pkg/logx"
	"insurance_desk/pkg/middlewarex"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/", handler(s.getHealth))
	r.Get("/health", handler(s.getHealth))

	r.Route("/policies", func(r chi.Router) {
		r.Get("/", handler(s.getPolicies))
		r.Get("/{policyID}", handler(s.getPolicy))
	})

	r.Get("/categories", handler(s.getCategories))
	r.Post("/quote", handler(s.postQuote))

	r.Route("/handoff", func(r chi.Router) {
		r.Post("/", handler(s.postHandoff))
		r.Get("/{ticketID}", handler(s.getHandoff))
	})
}

type RouterOptions struct {
	CORSAllowedOrigins []string
	LogFieldMaxLen     int
}

// NewRouter wires the middleware chain in front of the routes.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	logging := middlewarex.LoggingOptions{
		Masker:         logx.NewSensitiveDataMasker(),
		LogFieldMaxLen: opts.LogFieldMaxLen,
		SkipPaths:      []string{"/", "/health"},
	}

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.SessionID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.Metrics,
		middlewarex.CORS(opts.CORSAllowedOrigins),
		middlewarex.RequestLogging(logging),
		middlewarex.ResponseLogging(logging),
	)

	r.NotFound(handler(notFound))
	r.MethodNotAllowed(handler(methodNotAllowed))

	s.RegisterRoutes(r)

	return r
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
