package quote_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/service/quote"
	"insurance_desk/internal/domain/value"
	"insurance_desk/pkg/tests"
)

type fakeCatalog struct {
	policies []entity.Policy
	calls    atomic.Int32
}

func (c *fakeCatalog) List() []entity.Policy {
	c.calls.Add(1)

	return c.policies
}

func ptr[T any](v T) *T { return &v }

func sampleCatalog() []entity.Policy {
	return []entity.Policy{
		{
			ID: "health_1", Name: "Family Health Optima", Category: value.CategoryHealth,
			SumInsured:  []float64{500_000, 1_000_000},
			Eligibility: &entity.Eligibility{AdultMinAge: ptr(18), AdultMaxAge: ptr(65)},
		},
		{
			ID: "pension_1", Name: "Smart Pension", Category: value.CategoryPension,
			EntryAgeMin: ptr(30), EntryAgeMax: ptr(70),
		},
		{
			ID: "protection_1", Name: "iTerm Plus", Category: value.CategoryProtection, UIN: "104N123V01",
			PremiumYearly: map[string]float64{"10000000": 14500}, CriticalIllnessCount: 34,
			EntryAgeMin: ptr(18), EntryAgeMax: ptr(65),
		},
		{
			ID: "savings_1", Name: "Assured Savings", Category: value.CategorySavings,
			SumAssuredOptions: []float64{2_000_000},
		},
		{
			ID: "ulip_1", Name: "Wealth Builder", Category: value.CategoryULIP,
			PremiumYearly: map[string]float64{"1000000": 60000},
		},
		{
			ID: "annuity_1", Name: "Guaranteed Pension", Category: value.CategoryAnnuity,
			AnnuityPayoutFrequency: []string{"monthly"},
		},
	}
}

func mustBand(t *testing.T, s string) *value.Band {
	t.Helper()

	b, err := value.ParseBand(s)
	require.NoError(t, err)

	return &b
}

func TestService_Quote(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	svc := quote.NewService(&fakeCatalog{policies: sampleCatalog()}, 0)

	got := svc.Quote(context.Background(), entity.CustomerProfile{
		AgeBand:              mustBand(t, "25-35"),
		DependentsCount:      2,
		RiskTolerance:        value.RiskBalanced,
		PreferredPremiumBand: mustBand(t, "10k-25k"),
	})

	r.Equal(quote.Disclaimer, got.Disclaimer)
	r.Len(got.Recommended, quote.MaxRecommendations)
	r.Equal("protection_1", got.Recommended[0].Policy.ID)
	r.Equal(int64(14500), got.Recommended[0].Premium)
	r.Contains(got.Recommended[0].Matched, "premium")
	r.Equal("High coverage with 34 critical illnesses covered", got.Recommended[0].Summary)
}

func TestService_Quote_FallbackPremium(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	svc := quote.NewService(&fakeCatalog{policies: []entity.Policy{
		{ID: "annuity_1", Category: value.CategoryAnnuity},
	}}, 0)

	got := svc.Quote(context.Background(), entity.CustomerProfile{})

	r.Len(got.Recommended, 1)
	r.Equal(quote.FallbackPremium, got.Recommended[0].Premium)
	r.Equal("Guaranteed regular income for retirement", got.Recommended[0].Reason)
}

func TestService_Quote_EmptyCatalog(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	svc := quote.NewService(&fakeCatalog{}, time.Minute)

	got := svc.Quote(context.Background(), entity.CustomerProfile{RiskTolerance: value.RiskAggressive})

	r.NotNil(got.Recommended)
	r.Empty(got.Recommended)
	r.Equal(quote.Disclaimer, got.Disclaimer)
}

func TestService_Quote_Memo(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	catalog := &fakeCatalog{policies: sampleCatalog()}
	svc := quote.NewService(catalog, time.Minute)
	profile := entity.CustomerProfile{RiskTolerance: value.RiskConservative, HealthFlags: []string{"bp", "asthma"}}
	reordered := entity.CustomerProfile{RiskTolerance: value.RiskConservative, HealthFlags: []string{"asthma", "bp"}}

	first := svc.Quote(context.Background(), profile)
	second := svc.Quote(context.Background(), reordered)

	r.Equal(first, second)
	r.Equal(int32(1), catalog.calls.Load())

	svc.Quote(context.Background(), entity.CustomerProfile{RiskTolerance: value.RiskAggressive})
	r.Equal(int32(2), catalog.calls.Load())
}

func TestService_Quote_Properties(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	rnd := tests.NewRandomizer()

	t.Logf("randomizer seed: %d", rnd.Seed)

	svc := quote.NewService(&fakeCatalog{policies: sampleCatalog()}, 0)

	ages := []string{"18-25", "25-35", "35-45", "45-60", "60+"}
	premiums := []string{"<10k", "10k-25k", "25k-50k", "50k-1L", ">1L"}
	risks := []value.RiskTolerance{"", value.RiskConservative, value.RiskBalanced, value.RiskAggressive}
	vehicles := []value.VehicleType{"", value.VehicleCar, value.VehicleBike}

	for range 200 {
		profile := entity.CustomerProfile{
			DependentsCount: rnd.Intn(5),
			RiskTolerance:   tests.OneOf(rnd, risks...),
			VehicleType:     tests.OneOf(rnd, vehicles...),
		}

		if rnd.Bool() {
			profile.AgeBand = mustBand(t, tests.OneOf(rnd, ages...))
		}

		if rnd.Bool() {
			profile.PreferredPremiumBand = mustBand(t, tests.OneOf(rnd, premiums...))
		}

		if rnd.Bool() {
			profile.HealthFlags = []string{"diabetes"}
		}

		got := svc.Quote(context.Background(), profile)

		r.LessOrEqual(len(got.Recommended), quote.MaxRecommendations)
		r.Equal(quote.Disclaimer, got.Disclaimer)

		for i, rec := range got.Recommended {
			r.GreaterOrEqual(rec.Score, 0.0)
			r.NotEmpty(rec.Reason)

			if i > 0 {
				r.GreaterOrEqual(got.Recommended[i-1].Score, rec.Score)
			}
		}

		r.Equal(got, svc.Quote(context.Background(), profile))
	}
}
