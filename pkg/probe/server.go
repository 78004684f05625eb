package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ReadinessFunc reports whether the service can answer traffic and why not.
type ReadinessFunc func() (bool, string)

type Server struct {
	listenAddress string
	options       Options
	ready         ReadinessFunc
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type state struct {
	Options
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func NewServer(
	listenAddress string,
	options Options,
	ready ReadinessFunc,
) Server {
	if ready == nil {
		ready = func() (bool, string) { return true, "" }
	}

	return Server{
		listenAddress: listenAddress,
		options:       options,
		ready:         ready,
	}
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("probe server started", slog.String("address", s.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, state{Options: s.options, Status: "ok"})
}

func (s Server) handlerReady(w http.ResponseWriter, _ *http.Request) {
	if ok, reason := s.ready(); !ok {
		s.write(w, http.StatusServiceUnavailable, state{Options: s.options, Status: "not ready", Reason: reason})

		return
	}

	s.write(w, http.StatusOK, state{Options: s.options, Status: "ready"})
}

func (s Server) write(w http.ResponseWriter, status int, body state) {
	b, _ := json.Marshal(body) //nolint:errchkjson

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b) //nolint:errcheck
}
