package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/service/handoff"
	"insurance_desk/internal/domain/service/quote"
	"insurance_desk/internal/domain/value"
	"insurance_desk/internal/infrastructure/catalog"
	"insurance_desk/internal/infrastructure/persistence"
	"insurance_desk/internal/server"
	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/rest"
	"insurance_desk/pkg/tests"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	tickets []entity.HandoffTicket
}

func (d *recordingDispatcher) Dispatch(_ context.Context, ticket entity.HandoffTicket) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tickets = append(d.tickets, ticket)

	return nil
}

func (d *recordingDispatcher) Tickets() []entity.HandoffTicket {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.tickets)
}

func ptr[T any](v T) *T { return &v }

func samplePolicies() []entity.Policy {
	return []entity.Policy{
		{
			ID: "health_1", Name: "Family Health Optima", Category: value.CategoryHealth,
			SumInsured:  []float64{500_000, 1_000_000},
			Eligibility: &entity.Eligibility{AdultMinAge: ptr(18), AdultMaxAge: ptr(65)},
		},
		{
			ID: "protection_1", Name: "iTerm Plus", Category: value.CategoryProtection, UIN: "104N123V01",
			PremiumYearly: map[string]float64{"10000000": 14500},
			EntryAgeMin:   ptr(18), EntryAgeMax: ptr(65),
		},
		{
			ID: "ulip_1", Name: "Wealth Builder", Category: value.CategoryULIP,
			PremiumYearly: map[string]float64{"1000000": 60000},
		},
		{
			ID: "annuity_1", Name: "Guaranteed Pension", Category: value.CategoryAnnuity,
		},
	}
}

type testEnv struct {
	client     tests.APIClient
	dispatcher *recordingDispatcher
}

func newTestEnv(t *testing.T, policies []entity.Policy) testEnv {
	t.Helper()

	store := catalog.NewStore(policies)
	dispatcher := &recordingDispatcher{}

	srv := server.NewServer(
		server.NewHealthServer("insurance-desk", "test", store),
		server.NewCatalogServer(store),
		server.NewQuoteServer(quote.NewService(store, time.Minute)),
		server.NewHandoffServer(handoff.NewService(persistence.NewMemoryHandoffRepository(), dispatcher)),
	)

	ts := httptest.NewServer(server.NewRouter(srv, server.RouterOptions{LogFieldMaxLen: 1024}))
	t.Cleanup(ts.Close)

	return testEnv{
		client:     tests.NewAPIClient(t, ts.URL, ts.Client()),
		dispatcher: dispatcher,
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/", "/health"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			env := newTestEnv(t, samplePolicies())

			var health rest.Health

			resp, err := env.client.Get(context.Background(), path, nil, &health, nil)
			r.NoError(err)
			r.Equal(http.StatusOK, resp.StatusCode)
			r.Equal("ok", health.Status)
			r.Equal(4, health.Policies)
			r.NotEmpty(resp.Header.Get("X-Trace-Id"))
		})
	}
}

func TestHealth_EmptyCatalog(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, nil)

	var health rest.Health

	resp, err := env.client.Get(context.Background(), "/health", nil, &health, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("degraded", health.Status)
	r.Zero(health.Policies)
}

func TestPolicies(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())
	ctx := context.Background()

	var all []rest.Policy

	resp, err := env.client.Get(ctx, "/policies", nil, &all, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Len(all, 4)
	r.Equal("health_1", all[0].PolicyID)
	r.Equal("protection", all[1].Category)

	var again []rest.Policy

	_, err = env.client.Get(ctx, "/policies", nil, &again, nil)
	r.NoError(err)
	r.Equal(all, again)

	var filtered []rest.Policy

	_, err = env.client.Get(ctx, "/policies?category=ULIP%20Plan", nil, &filtered, nil)
	r.NoError(err)
	r.Len(filtered, 1)
	r.Equal("ulip_1", filtered[0].PolicyID)

	var errResp rest.Error

	resp, err = env.client.Get(ctx, "/policies?category=crypto", nil, nil, &errResp)
	r.NoError(err)
	r.Equal(http.StatusBadRequest, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.UnknownCategory), errResp.Code)
}

func TestPolicies_EmptyCatalog(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, nil)

	var all []rest.Policy

	resp, err := env.client.Get(context.Background(), "/policies", nil, &all, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.NotNil(all)
	r.Empty(all)
}

func TestPolicy(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())
	ctx := context.Background()

	var policy rest.Policy

	resp, err := env.client.Get(ctx, "/policies/protection_1", nil, &policy, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("iTerm Plus", policy.PolicyName)
	r.Equal("104N123V01", policy.UIN)
	r.InDelta(14500, policy.PremiumYearly["10000000"], 0.001)

	var errResp rest.Error

	resp, err = env.client.Get(ctx, "/policies/protection_404", nil, nil, &errResp)
	r.NoError(err)
	r.Equal(http.StatusNotFound, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.PolicyNotFound), errResp.Code)
	r.NotEmpty(errResp.SupportID)
}

func TestCategories(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())

	var categories rest.Categories

	resp, err := env.client.Get(context.Background(), "/categories", nil, &categories, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal(4, categories.Total)

	counts := map[string]int{}
	for _, c := range categories.Categories {
		counts[c.Category] = c.Count
		r.NotEmpty(c.Label)
	}

	r.Equal(1, counts["protection"])
	r.Zero(counts["pension"])
	r.NotContains(counts, "motor")
}

func TestQuote(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())

	var got rest.QuoteResponse

	resp, err := env.client.Post(context.Background(), "/quote", nil, rest.QuoteRequest{
		AgeBand:              "25-35",
		DependentsCount:      ptr(2),
		RiskTolerance:        "balanced",
		PreferredPremiumBand: "10k-25k",
	}, &got, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal(quote.Disclaimer, got.Disclaimer)
	r.LessOrEqual(len(got.Recommended), quote.MaxRecommendations)
	r.NotEmpty(got.Recommended)

	top := got.Recommended[0]
	r.Equal("protection_1", top.PolicyID)
	r.Equal(int64(14500), top.Premium)
	r.Contains(top.Matched, "premium")
	r.NotEmpty(top.Reason)

	ids := make([]string, 0, len(got.Recommended))
	for i, rec := range got.Recommended {
		ids = append(ids, rec.PolicyID)

		if i > 0 {
			r.GreaterOrEqual(got.Recommended[i-1].Score, rec.Score)
		}
	}

	r.NotEqual("ulip_1", ids[0])
}

func TestQuote_EmptyCatalog(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, nil)

	var got rest.QuoteResponse

	resp, err := env.client.PostJSON(context.Background(), "/quote", nil, `{}`, &got, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.NotNil(got.Recommended)
	r.Empty(got.Recommended)
	r.Equal(quote.Disclaimer, got.Disclaimer)
}

func TestQuote_BadRequest(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name string
		body string
		code failure.ErrorCode
	}{
		{name: "malformed json", body: `{"age_band": `, code: errcodes.ValidationError},
		{name: "wrong type", body: `{"dependents_count": "two"}`, code: errcodes.ValidationError},
		{name: "negative dependents", body: `{"dependents_count": -1}`, code: errcodes.ValidationError},
		{name: "oversized risk", body: `{"risk_tolerance": "` + strings.Repeat("x", 33) + `"}`, code: errcodes.ValidationError},
		{name: "bad band", body: `{"preferred_premium_band": "cheap"}`, code: errcodes.InvalidBand},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			env := newTestEnv(t, samplePolicies())

			var errResp rest.Error

			resp, err := env.client.PostJSON(context.Background(), "/quote", nil, tc.body, nil, &errResp)
			r.NoError(err)
			r.Equal(http.StatusBadRequest, resp.StatusCode)
			r.Equal(rest.ErrorCode(tc.code), errResp.Code)
			r.NotEmpty(errResp.Message)
		})
	}
}

func TestQuote_BadRequestLeavesStateIntact(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())
	ctx := context.Background()

	request := rest.QuoteRequest{
		AgeBand:              "25-35",
		DependentsCount:      ptr(2),
		RiskTolerance:        "balanced",
		PreferredPremiumBand: "10k-25k",
	}

	var before rest.QuoteResponse

	_, err := env.client.Post(ctx, "/quote", nil, request, &before, nil)
	r.NoError(err)

	var policiesBefore []rest.Policy

	_, err = env.client.Get(ctx, "/policies", nil, &policiesBefore, nil)
	r.NoError(err)

	for _, body := range []string{`{"age_band": `, `{"preferred_premium_band": "cheap"}`, `[1, 2]`} {
		var errResp rest.Error

		resp, err := env.client.PostJSON(ctx, "/quote", nil, body, nil, &errResp)
		r.NoError(err)
		r.Equal(http.StatusBadRequest, resp.StatusCode)
	}

	var after rest.QuoteResponse

	_, err = env.client.Post(ctx, "/quote", nil, request, &after, nil)
	r.NoError(err)
	r.Equal(before, after)

	// A different profile is still scored from scratch.
	var other rest.QuoteResponse

	_, err = env.client.Post(ctx, "/quote", nil, rest.QuoteRequest{RiskTolerance: "aggressive"}, &other, nil)
	r.NoError(err)
	r.Equal("protection_1", other.Recommended[0].PolicyID)
	r.Equal("ulip_1", other.Recommended[1].PolicyID)

	var policiesAfter []rest.Policy

	_, err = env.client.Get(ctx, "/policies", nil, &policiesAfter, nil)
	r.NoError(err)
	r.Equal(policiesBefore, policiesAfter)
}

func TestQuote_LenientProfileValues(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())
	ctx := context.Background()

	quoteFor := func(request rest.QuoteRequest) rest.QuoteResponse {
		var got rest.QuoteResponse

		resp, err := env.client.Post(ctx, "/quote", nil, request, &got, nil)
		r.NoError(err)
		r.Equal(http.StatusOK, resp.StatusCode)

		return got
	}

	lower := quoteFor(rest.QuoteRequest{RiskTolerance: "balanced"})
	r.Equal(lower, quoteFor(rest.QuoteRequest{RiskTolerance: " Balanced "}))

	// Unknown tolerances are scored with the neutral weight of 3.
	moderate := quoteFor(rest.QuoteRequest{RiskTolerance: "moderate"})
	r.NotEmpty(moderate.Recommended)

	for _, rec := range moderate.Recommended {
		r.Contains(rec.Matched, "risk")
	}

	car := quoteFor(rest.QuoteRequest{VehicleType: "Car"})
	r.Equal(quote.Disclaimer, car.Disclaimer)

	withYears := quoteFor(rest.QuoteRequest{AgeBand: "25-35 years"})
	r.Equal(quoteFor(rest.QuoteRequest{AgeBand: "25-35"}), withYears)
}

func TestHandoff(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())
	ctx := context.Background()

	var created rest.HandoffResponse

	client := env.client.WithHeader("X-Session-Id", "chat-42")

	resp, err := client.Post(ctx, "/handoff", nil, rest.HandoffRequest{
		Reason:          "wants to talk to an agent",
		CustomerProfile: map[string]any{"age_band": "25-35", "phone": "+91 98765 43210"},
	}, &created, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("created", created.Status)
	r.Len(created.TicketID, 8)

	dispatched := env.dispatcher.Tickets()
	r.Len(dispatched, 1)
	r.Equal(created.TicketID, dispatched[0].ID)

	var ticket rest.HandoffTicket

	resp, err = env.client.Get(ctx, "/handoff/"+created.TicketID, nil, &ticket, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("wants to talk to an agent", ticket.Reason)
	r.Equal("chat-42", ticket.SessionID)
	r.Equal("25-35", ticket.CustomerProfile["age_band"])
	r.Empty(ticket.ForwardedAt)

	_, err = time.Parse(time.RFC3339, ticket.CreatedAt)
	r.NoError(err)
}

func TestHandoff_Errors(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())
	ctx := context.Background()

	var errResp rest.Error

	resp, err := env.client.PostJSON(ctx, "/handoff", nil, `{"customer_profile": {}}`, nil, &errResp)
	r.NoError(err)
	r.Equal(http.StatusBadRequest, resp.StatusCode)
	r.Contains(errResp.Message, "reason")

	resp, err = env.client.Get(ctx, "/handoff/nope0000", nil, nil, &errResp)
	r.NoError(err)
	r.Equal(http.StatusNotFound, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.TicketNotFound), errResp.Code)

	r.Empty(env.dispatcher.Tickets())
}

func TestRouting(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	env := newTestEnv(t, samplePolicies())
	ctx := context.Background()

	var errResp rest.Error

	resp, err := env.client.Get(ctx, "/nowhere", nil, nil, &errResp)
	r.NoError(err)
	r.Equal(http.StatusNotFound, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.NotFound), errResp.Code)

	resp, err = env.client.Get(ctx, "/quote", nil, nil, &errResp)
	r.NoError(err)
	r.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
	r.True(strings.HasPrefix(errResp.Message, http.MethodGet))
}
