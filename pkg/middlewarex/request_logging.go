package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"insurance_desk/pkg/logx"
)

// LoggingOptions are shared by RequestLogging and ResponseLogging.
type LoggingOptions struct {
	Masker         logx.SensitiveDataMaskerInterface
	LogFieldMaxLen int
	// SkipPaths are exact URL paths that are not dumped, e.g. liveness probes.
	SkipPaths []string
}

func (o LoggingOptions) skip(r *http.Request) bool {
	for _, p := range o.SkipPaths {
		if r.URL.Path == p {
			return true
		}
	}

	return false
}

func (o LoggingOptions) truncate(dump []byte) []byte {
	if o.LogFieldMaxLen > 0 && len(dump) > o.LogFieldMaxLen {
		return dump[:o.LogFieldMaxLen]
	}

	return dump
}

func RequestLogging(opts LoggingOptions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.skip(r) {
				next.ServeHTTP(w, r)

				return
			}

			ctx := r.Context()
			dumpBody := !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")

			dump, err := httputil.DumpRequest(r, dumpBody)

			logger(ctx).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldRequestBody, string(opts.Masker.Mask(opts.truncate(dump)))),
				logx.Error(err),
			)

			next.ServeHTTP(w, r)
		})
	}
}
