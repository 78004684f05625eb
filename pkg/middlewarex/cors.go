package middlewarex

import (
	"net/http"

	"github.com/go-chi/cors"
)

const corsMaxAgeSeconds = 300

// CORS allows the chatbot frontend origins. An empty list or "*" allows any
// origin, which is what the demo deployment runs with.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", headerNameTraceID, headerNameSessionID},
		ExposedHeaders:   []string{headerNameTraceID},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeSeconds,
	})
}
