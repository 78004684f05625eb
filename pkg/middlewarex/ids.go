package middlewarex

import (
	"net/http"

	"github.com/rs/xid"

	"insurance_desk/pkg/contextx"
)

const (
	headerNameTraceID   = "X-Trace-Id"
	headerNameSessionID = "X-Session-Id"
)

func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(headerNameTraceID)

		if traceID == "" {
			traceID = xid.New().String()
		}

		ctx := contextx.WithTraceID(r.Context(), contextx.TraceID(traceID))

		w.Header().Set(headerNameTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID picks up the chat session header sent by the chatbot frontend.
// Requests without the header pass through untouched.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(headerNameSessionID)
		if sessionID == "" {
			next.ServeHTTP(w, r)

			return
		}

		ctx := contextx.WithSessionID(r.Context(), contextx.SessionID(sessionID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
