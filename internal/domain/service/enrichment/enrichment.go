// Package enrichment asks a language model to summarise catalog records. It
// runs offline from cmd/enrich, never on the request path.
package enrichment

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/logx"
)

const (
	maxFeatures      = 5
	maxPreviewLength = 200
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

//go:embed prompt.md
var promptTemplate string

var (
	ErrNoJSON     = errors.New("no JSON object in model response")
	ErrNoFeatures = errors.New("model response has no key features")
)

type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

type Enricher struct {
	generator   Generator
	concurrency int
	force       bool
}

func NewEnricher(generator Generator, concurrency int) *Enricher {
	return &Enricher{
		generator:   generator,
		concurrency: max(1, concurrency),
	}
}

// WithForce re-enriches records that already carry an enrichment.
func (e *Enricher) WithForce(force bool) *Enricher {
	e.force = force

	return e
}

// Enrich produces the enrichment for a single policy.
func (e *Enricher) Enrich(ctx context.Context, policy entity.Policy) (entity.AIEnrichment, error) {
	policy.AIEnrichment = nil

	record, err := json.MarshalIndent(policy, "", "  ")
	if err != nil {
		return entity.AIEnrichment{}, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{POLICY_JSON}}", string(record))

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return entity.AIEnrichment{}, fmt.Errorf("generator.GenerateContent: %w", err)
	}

	logger(ctx).Debug(
		"model response",
		slog.String(logx.FieldPolicyID, policy.ID),
		slog.Int("response-length", utf8.RuneCountInString(raw)),
		slog.String("response-preview", truncate(raw, maxPreviewLength)),
	)

	enrichment, err := ParseResponse(raw)
	if err != nil {
		return entity.AIEnrichment{}, fmt.Errorf("ParseResponse: %w", err)
	}

	enrichment.Model = e.generator.Model()

	return enrichment, nil
}

// Stats summarises a batch run.
type Stats struct {
	Enriched int
	Skipped  int
	Failed   int
}

// EnrichAll enriches policies with bounded concurrency. A failed record is
// logged and kept unchanged, so the batch only fails when ctx is cancelled.
func (e *Enricher) EnrichAll(ctx context.Context, policies []entity.Policy) ([]entity.Policy, Stats, error) {
	result := make([]entity.Policy, len(policies))
	outcomes := make([]outcome, len(policies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, p := range policies {
		result[i] = p

		if p.HasEnrichment() && !e.force {
			outcomes[i] = outcomeSkipped

			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			enrichment, err := e.Enrich(gctx, p)
			if err != nil {
				outcomes[i] = outcomeFailed

				logger(ctx).Warn(
					"enrichment failed, record kept unchanged",
					slog.String(logx.FieldPolicyID, p.ID),
					logx.Error(err),
				)

				return nil
			}

			result[i].AIEnrichment = &enrichment
			outcomes[i] = outcomeEnriched

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("g.Wait: %w", err)
	}

	stats := Stats{
		Enriched: lo.Count(outcomes, outcomeEnriched),
		Skipped:  lo.Count(outcomes, outcomeSkipped),
		Failed:   lo.Count(outcomes, outcomeFailed),
	}

	return result, stats, nil
}

type outcome int

const (
	outcomeEnriched outcome = iota + 1
	outcomeSkipped
	outcomeFailed
)

type response struct {
	KeyFeatures    []string       `json:"key_features"`
	UniqueFeatures []string       `json:"unique_features"`
	Benefits       map[string]any `json:"benefits"`
	PlanDetails    *struct {
		UniqueFeatures []string `json:"unique_features"`
	} `json:"plan_details"`
}

// ParseResponse extracts the JSON object from a model reply. Markdown fences
// and chatter around the object are ignored.
func ParseResponse(raw string) (entity.AIEnrichment, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start < 0 || end <= start {
		return entity.AIEnrichment{}, ErrNoJSON
	}

	var resp response
	if err := json.UnmarshalFromString(raw[start:end+1], &resp); err != nil {
		return entity.AIEnrichment{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	unique := resp.UniqueFeatures
	if len(unique) == 0 && resp.PlanDetails != nil {
		unique = resp.PlanDetails.UniqueFeatures
	}

	enrichment := entity.AIEnrichment{
		KeyFeatures:    cleanFeatures(resp.KeyFeatures),
		UniqueFeatures: cleanFeatures(unique),
		Benefits:       resp.Benefits,
	}

	if len(enrichment.KeyFeatures) == 0 {
		return entity.AIEnrichment{}, ErrNoFeatures
	}

	return enrichment, nil
}

func cleanFeatures(features []string) []string {
	cleaned := lo.Uniq(lo.FilterMap(features, func(f string, _ int) (string, bool) {
		f = strings.TrimSpace(f)

		return f, f != ""
	}))

	if len(cleaned) > maxFeatures {
		cleaned = cleaned[:maxFeatures]
	}

	return cleaned
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n]) + "..."
}
