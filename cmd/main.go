package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"insurance_desk/internal/application"
	"insurance_desk/internal/config"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)

	if err = application.Run(contextx.WithLogger(ctx, log), cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}
