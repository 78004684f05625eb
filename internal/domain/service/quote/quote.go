package quote

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/service/scoring"
	"insurance_desk/pkg/logx"
)

const (
	Disclaimer = "Quotes are indicative and subject to underwriting, waiting periods, and exclusions. " +
		"Please review policy terms, conditions, and riders before purchase."

	MaxRecommendations = 3

	// FallbackPremium is shown for policies that publish neither premiums nor
	// sums assured.
	FallbackPremium int64 = 5000

	memoCleanupInterval = 10 * time.Minute
)

//nolint:gochecknoglobals
var quotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "insurance_desk",
		Subsystem: "quote",
		Name:      "quotes_total",
		Help:      "Quotes served, by memo hit or miss.",
	},
	[]string{"cache"},
)

type Catalog interface {
	List() []entity.Policy
}

type Service struct {
	catalog Catalog
	memo    *cache.Cache
}

// NewService builds a quote service over a static catalog. Results are
// memoised per profile for memoTTL. A non-positive memoTTL disables the memo.
func NewService(catalog Catalog, memoTTL time.Duration) *Service {
	s := &Service{catalog: catalog}

	if memoTTL > 0 {
		s.memo = cache.New(memoTTL, memoCleanupInterval)
	}

	return s
}

// Quote ranks the catalog for the profile and returns the best matches. It
// never fails: an empty catalog yields an empty recommendation list.
func (s *Service) Quote(ctx context.Context, profile entity.CustomerProfile) entity.Quote {
	key := profile.Key()

	if s.memo != nil {
		if cached, ok := s.memo.Get(key); ok {
			quotesTotal.WithLabelValues("hit").Inc()

			return cached.(entity.Quote) //nolint:forcetypeassert
		}
	}

	quotesTotal.WithLabelValues("miss").Inc()

	policies := s.catalog.List()
	ranked := scoring.Rank(profile, policies, MaxRecommendations)

	quote := entity.Quote{
		Recommended: lo.Map(ranked, func(r scoring.Ranked, _ int) entity.Recommendation {
			return newRecommendation(profile, r)
		}),
		Disclaimer: Disclaimer,
	}

	logger(ctx).Info(
		"quote computed",
		slog.Int(logx.FieldCount, len(quote.Recommended)),
		slog.Int(logx.FieldCatalogSize, len(policies)),
	)

	if s.memo != nil {
		s.memo.Set(key, quote, cache.DefaultExpiration)
	}

	return quote
}

func newRecommendation(profile entity.CustomerProfile, r scoring.Ranked) entity.Recommendation {
	premium := FallbackPremium
	if p, _, ok := r.Policy.MinPremium(); ok {
		premium = int64(p)
	}

	summary := scoring.Summary(profile, r.Policy, premium)

	return entity.Recommendation{
		Policy:  r.Policy,
		Premium: premium,
		Score:   r.Result.Score,
		Reason:  r.Result.Rationale(summary),
		Summary: summary,
		Matched: r.Result.Matched(),
	}
}
