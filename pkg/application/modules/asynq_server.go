package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type AsynqQueues map[string]int

type AsynqHandler struct {
	Pattern string
	Handle  func(context.Context, *asynq.Task) error
}

// AsynqServer consumes background tasks from redis. It shares the redis
// client opened by the connector instead of dialing its own.
type AsynqServer struct {
	Redis       redis.UniversalClient
	Concurrency int
}

func (s AsynqServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	queues AsynqQueues,
	handlers ...AsynqHandler,
) {
	g.Go(func() error {
		worker := asynq.NewServerFromRedisClient(s.Redis, asynq.Config{
			BaseContext: func() context.Context { return ctx },
			Concurrency: s.Concurrency,
			Queues:      queues,
			Logger:      asynqLogger{log: logger(ctx)},
		})

		mux := asynq.NewServeMux()

		for _, h := range handlers {
			mux.HandleFunc(h.Pattern, h.Handle)
		}

		// Start instead of Run: Run installs its own signal handling while the
		// process lifetime is owned by ctx.
		if err := worker.Start(mux); err != nil {
			return fmt.Errorf("asynqServer.Start: %w", err)
		}

		logger(ctx).Info("asynq server started", slog.Int("handlers", len(handlers)))

		<-ctx.Done()

		worker.Shutdown()

		logger(ctx).Info("asynq server stopped")

		return nil
	})
}

type asynqLogger struct {
	log *slog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.log.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.log.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.log.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.log.Error(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.log.Error(fmt.Sprint(args...)) }
