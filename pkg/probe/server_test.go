package probe_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"insurance_desk/pkg/probe"
)

func TestServerHandler(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		endpoint   string
		ready      probe.ReadinessFunc
		statusCode int
		body       string
	}{
		{
			name:       "Health handler",
			endpoint:   "/healthz",
			statusCode: http.StatusOK,
			body:       `{"name":"insurance-desk","version":"v0.0.1","status":"ok"}`,
		},
		{
			name:       "Ready handler",
			endpoint:   "/ready",
			statusCode: http.StatusOK,
			body:       `{"name":"insurance-desk","version":"v0.0.1","status":"ready"}`,
		},
		{
			name:       "Not ready with empty catalog",
			endpoint:   "/ready",
			ready:      func() (bool, string) { return false, "catalog is empty" },
			statusCode: http.StatusServiceUnavailable,
			body:       `{"name":"insurance-desk","version":"v0.0.1","status":"not ready","reason":"catalog is empty"}`,
		},
		{
			name:       "Liveness ignores readiness",
			endpoint:   "/healthz",
			ready:      func() (bool, string) { return false, "catalog is empty" },
			statusCode: http.StatusOK,
			body:       `{"name":"insurance-desk","version":"v0.0.1","status":"ok"}`,
		},
		{
			name:       "Invalid endpoint",
			endpoint:   "/invalid",
			statusCode: http.StatusNotFound,
			body:       "404 page not found\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			server := probe.NewServer(":0", probe.Options{Name: "insurance-desk", Version: "v0.0.1"}, tc.ready)

			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.endpoint, http.NoBody))

			rq.Equal(tc.statusCode, rec.Code)

			body, err := io.ReadAll(rec.Body)
			rq.NoError(err)
			rq.Equal(tc.body, string(body))
		})
	}
}
