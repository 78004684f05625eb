package middlewarex

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"insurance_desk/pkg/httpx/reply"
	"insurance_desk/pkg/logx"
)

var errPanic = errors.New("panic in handler")

// Recovery turns a handler panic into a regular 500 error response so the
// client still gets a support id.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				logger(ctx).Error(
					errPanic.Error(),
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)

				reply.Error(ctx, w, errPanic)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
