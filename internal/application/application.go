package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"insurance_desk/internal/config"
	"insurance_desk/internal/domain/service/handoff"
	"insurance_desk/internal/domain/service/quote"
	"insurance_desk/internal/infrastructure/catalog"
	"insurance_desk/internal/infrastructure/notifier"
	"insurance_desk/internal/infrastructure/persistence"
	"insurance_desk/internal/infrastructure/queue"
	"insurance_desk/internal/server"
	"insurance_desk/internal/transport/bot"
	"insurance_desk/internal/transport/bot/handler"
	"insurance_desk/internal/worker"
	"insurance_desk/pkg/application/connectors"
	"insurance_desk/pkg/application/modules"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run serves the API until ctx is cancelled. Postgres, redis and the agent bot
// are optional, the service degrades to in-process equivalents without them.
func Run(ctx context.Context, cfg config.Config) error {
	log := logger(ctx).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	ctx = contextx.WithLogger(ctx, log)

	// 1. Catalog
	store, err := catalog.Load(ctx, cfg.Catalog.Dir, cfg.Catalog.FallbackFile)
	if err != nil {
		log.Error("catalog is not loaded, serving an empty catalog", logx.Error(err))
	}

	log.Info("catalog ready", slog.Int(logx.FieldCatalogSize, store.Len()))

	// 2. Handoff storage
	tickets, closeTickets, err := newTicketRepository(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer closeTickets()

	// 3. Agent notifications
	notifyAgents, err := newNotifier(ctx, cfg.Bot)
	if err != nil {
		return err
	}

	handoffNotifier := worker.NewHandoffNotifier(tickets, notifyAgents)

	g, ctx := errgroup.WithContext(ctx)

	// 4. Handoff dispatch: asynq queue when redis is configured
	var dispatcher handoff.Dispatcher = handoffNotifier

	if cfg.Redis.Enabled() {
		redisConnector := &connectors.Redis{
			Address:        cfg.Redis.Address,
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			DatabaseNumber: cfg.Redis.Database,
			PoolSize:       cfg.Redis.PoolSize,
		}
		defer redisConnector.Close(context.WithoutCancel(ctx))

		redisClient, err := redisConnector.Client(ctx)
		if err != nil {
			return fmt.Errorf("redisConnector.Client: %w", err)
		}

		asynqClient := asynq.NewClientFromRedisClient(redisClient)
		dispatcher = queue.NewDispatcher(asynqClient).WithMaxRetry(cfg.Redis.MaxRetry)

		modules.AsynqServer{
			Redis:       redisClient,
			Concurrency: cfg.Redis.WorkerConcurrency,
		}.Run(ctx, g, modules.AsynqQueues{queue.QueueHandoff: 1}, modules.AsynqHandler{
			Pattern: queue.TypeHandoffNotify,
			Handle:  handoffNotifier.ProcessTask,
		})
	}

	handoffService := handoff.NewService(tickets, dispatcher)

	// 5. Agent commands
	if cfg.Bot.Enabled() && cfg.Bot.Commands {
		agentBot, err := bot.New(ctx, cfg.Bot.Token, cfg.Bot.ChatID, handler.New(handoffService, store))
		if err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}

		g.Go(func() error { return agentBot.Run(ctx) })
	}

	// 6. HTTP API
	srv := server.NewServer(
		server.NewHealthServer(cfg.App.Name, cfg.App.Version, store),
		server.NewCatalogServer(store),
		server.NewQuoteServer(quote.NewService(store, cfg.Quote.CacheTTL)),
		server.NewHandoffServer(handoffService),
	)

	modules.HTTPServer{
		ListenAddress: cfg.HTTP.ListenAddress,
		Handler: server.NewRouter(srv, server.RouterOptions{
			CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
			LogFieldMaxLen:     cfg.Log.FieldMaxLen,
		}),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g)

	// 7. Probes and metrics
	modules.Observability{
		Name:                 cfg.App.Name,
		Version:              cfg.App.Version,
		ProbeListenAddress:   cfg.App.ProbeListenAddress,
		MetricsListenAddress: cfg.App.MetricsListenAddress,
		Ready: func() (bool, string) {
			if store.Len() == 0 {
				return false, "catalog is empty"
			}

			return true, ""
		},
	}.Run(ctx, g)

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	log.Info("application stopped")

	return nil
}

func newTicketRepository(ctx context.Context, cfg config.Postgres) (handoff.Repository, func(), error) {
	if !cfg.Enabled() {
		logger(ctx).Warn("PG_DSN is not set, handoff tickets are kept in memory")

		return persistence.NewMemoryHandoffRepository(), func() {}, nil
	}

	pg := &connectors.Postgres{
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	db, err := pg.Client(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("pg.Client: %w", err)
	}

	repo := persistence.NewHandoffRepository(db)

	if err = repo.Migrate(ctx); err != nil {
		pg.Close(ctx)

		return nil, nil, fmt.Errorf("repo.Migrate: %w", err)
	}

	return repo, func() { pg.Close(context.WithoutCancel(ctx)) }, nil
}

func newNotifier(ctx context.Context, cfg config.Bot) (worker.Notifier, error) {
	if !cfg.Enabled() {
		logger(ctx).Warn("BOT_TOKEN or BOT_CHAT_ID is not set, handoff tickets are only logged")

		return notifier.LogNotifier{}, nil
	}

	bot, err := notifier.NewTelegramBot(cfg.Token, cfg.ChatID)
	if err != nil {
		return nil, fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	return bot, nil
}
