package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"insurance_desk/internal/config"
	"insurance_desk/internal/domain/service/enrichment"
	"insurance_desk/internal/infrastructure/catalog"
	"insurance_desk/internal/infrastructure/gemini"
	"insurance_desk/pkg/httpx"
	"insurance_desk/pkg/logx"
)

const geminiRequestTimeout = 2 * time.Minute

var ErrNoDocuments = errors.New("no category files found")

type EnrichOptions struct {
	Dir         string
	Concurrency int
	Force       bool
	DryRun      bool
}

// RunEnrich adds AI generated features to every category file in opts.Dir and
// writes the files back. Records the model fails on stay as they were.
func RunEnrich(ctx context.Context, cfg config.Config, opts EnrichOptions) error {
	log := logger(ctx)

	docs, err := catalog.OpenDocuments(ctx, opts.Dir)
	if err != nil {
		return fmt.Errorf("catalog.OpenDocuments: %w", err)
	}

	if len(docs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, opts.Dir)
	}

	httpClient := &http.Client{
		Timeout: geminiRequestTimeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithUpstream("gemini"),
			httpx.WithLogFieldMaxLen(cfg.Log.FieldMaxLen),
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		),
	}

	generator, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, httpClient)
	if err != nil {
		return fmt.Errorf("gemini.NewGenerator: %w", err)
	}

	enricher := enrichment.NewEnricher(generator, opts.Concurrency).WithForce(opts.Force)

	var total enrichment.Stats

	for _, doc := range docs {
		docLog := log.With(slog.String(logx.FieldFile, doc.Path), logx.Stringer(logx.FieldCategory, doc.Category))

		policies, stats, err := enricher.EnrichAll(ctx, doc.Policies)
		if err != nil {
			return fmt.Errorf("enricher.EnrichAll(%s): %w", doc.Path, err)
		}

		total.Enriched += stats.Enriched
		total.Skipped += stats.Skipped
		total.Failed += stats.Failed

		docLog.Info(
			"category enriched",
			slog.Int("enriched", stats.Enriched),
			slog.Int("skipped", stats.Skipped),
			slog.Int("failed", stats.Failed),
		)

		if stats.Enriched == 0 || opts.DryRun {
			continue
		}

		if err = doc.Apply(policies); err != nil {
			return fmt.Errorf("doc.Apply: %w", err)
		}

		if err = doc.Save(); err != nil {
			return fmt.Errorf("doc.Save(%s): %w", doc.Path, err)
		}

		docLog.Info("category file saved")
	}

	log.Info(
		"enrichment finished",
		slog.String(logx.FieldModel, generator.Model()),
		slog.Int("enriched", total.Enriched),
		slog.Int("skipped", total.Skipped),
		slog.Int("failed", total.Failed),
		slog.Bool("dry-run", opts.DryRun),
	)

	return nil
}
