package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"insurance_desk/pkg/logx"
)

// HTTPServer serves Handler until ctx is cancelled, then drains in-flight
// requests for at most ShutdownTimeout. Request contexts inherit ctx values,
// the process logger included.
type HTTPServer struct {
	ListenAddress     string
	Handler           http.Handler
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

func (h HTTPServer) Run(ctx context.Context, g *errgroup.Group) {
	httpServer := &http.Server{
		Addr:              h.ListenAddress,
		Handler:           h.Handler,
		ReadHeaderTimeout: h.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	log := logger(ctx).With(slog.String("address", h.ListenAddress))

	g.Go(func() error {
		go func() {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.ShutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("httpServer.Shutdown", logx.Error(err))
			}
		}()

		log.Info("http server started")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}

		log.Info("http server stopped")

		return nil
	})
}
