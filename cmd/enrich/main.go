package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"insurance_desk/internal/application"
	"insurance_desk/internal/config"
	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1) //nolint:gocritic
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts  application.EnrichOptions
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Adds AI generated key features to the catalog category files",
		Long: "enrich sends every policy of the category files to Gemini and stores the " +
			"returned key and unique features under ai_enrichment. Already enriched " +
			"policies are skipped unless --force is given.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err //nolint:wrapcheck
			}

			level := cfg.Log.Level
			if debug {
				level = "debug"
			}

			log := logx.NewLogger(os.Stderr, level, cfg.Log.JSON)
			slog.SetDefault(log)

			if opts.Dir == "" {
				opts.Dir = cfg.Catalog.Dir
			}

			if opts.Concurrency <= 0 {
				opts.Concurrency = cfg.Gemini.Concurrency
			}

			if err = application.RunEnrich(contextx.WithLogger(cmd.Context(), log), cfg, opts); err != nil {
				log.Error("enrichment failed", logx.Error(err))

				return err //nolint:wrapcheck
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory with the category files (default CATALOG_DIR)")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 0, "parallel Gemini requests (default ENRICH_CONCURRENCY)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "enrich policies that already have ai_enrichment")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "call the model but do not write files")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "verbose output")

	return cmd
}
