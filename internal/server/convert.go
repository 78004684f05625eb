package server

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/value"
	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/lox"
	"insurance_desk/pkg/rest"
)

const scorePrecision = 100

func newRESTPolicies(policies []entity.Policy) []rest.Policy {
	return lox.Map(policies, newRESTPolicy)
}

func newRESTPolicy(p entity.Policy) rest.Policy {
	policy := rest.Policy{
		PolicyID:               p.ID,
		UIN:                    p.UIN,
		PolicyName:             p.Name,
		Insurer:                p.Insurer,
		Category:               p.Category.String(),
		Type:                   p.Type,
		ProductType:            p.ProductType,
		PremiumYearly:          p.PremiumYearly,
		SumAssuredOptions:      p.SumAssuredOptions,
		SumInsured:             p.SumInsured,
		EntryAgeMin:            p.EntryAgeMin,
		EntryAgeMax:            p.EntryAgeMax,
		MaturityAge:            p.MaturityAge,
		JointLifeAvailable:     p.JointLifeAvailable,
		CriticalIllnessCount:   p.CriticalIllnessCount,
		AnnuityPayoutFrequency: p.AnnuityPayoutFrequency,
		PremiumPaymentModes:    p.PremiumPaymentModes,
		Exclusions:             p.Exclusions,
		Riders: lox.Map(p.Riders, func(r entity.Rider) rest.Rider {
			return rest.Rider{Name: r.Name, Premium: r.Premium}
		}),
	}

	if e := p.Eligibility; e != nil {
		policy.Eligibility = &rest.Eligibility{
			AdultMinAge: e.AdultMinAge,
			AdultMaxAge: e.AdultMaxAge,
			ChildMinAge: e.ChildMinAge,
			ChildMaxAge: e.ChildMaxAge,
		}
	}

	if e := p.AIEnrichment; e != nil {
		policy.AIEnrichment = &rest.AIEnrichment{
			KeyFeatures:    e.KeyFeatures,
			UniqueFeatures: e.UniqueFeatures,
			Benefits:       e.Benefits,
		}
	}

	return policy
}

func newRESTCategoryStats(stats []entity.CategoryStat) []rest.CategoryStat {
	return lox.Map(stats, func(s entity.CategoryStat) rest.CategoryStat {
		return rest.CategoryStat{
			Category: s.Category.String(),
			Label:    s.Category.Label(),
			Count:    s.Count,
		}
	})
}

func newRESTQuote(q entity.Quote) rest.QuoteResponse {
	return rest.QuoteResponse{
		Recommended: lox.Map(q.Recommended, func(r entity.Recommendation) rest.Recommendation {
			return rest.Recommendation{
				PolicyID: r.Policy.ID,
				UIN:      r.Policy.UIN,
				Name:     r.Policy.Name,
				Insurer:  r.Policy.Insurer,
				Category: r.Policy.Category.String(),
				Premium:  r.Premium,
				Score:    float64(int64(r.Score*scorePrecision+0.5)) / scorePrecision,
				Reason:   r.Reason,
				Summary:  r.Summary,
				Matched:  r.Matched,
			}
		}),
		Disclaimer: q.Disclaimer,
	}
}

func newRESTTicket(t entity.HandoffTicket) rest.HandoffTicket {
	ticket := rest.HandoffTicket{
		TicketID:        t.ID,
		Status:          string(t.Status),
		Reason:          t.Reason,
		SessionID:       t.SessionID,
		CustomerProfile: t.CustomerProfile,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}

	if t.ForwardedAt != nil {
		ticket.ForwardedAt = t.ForwardedAt.Format(time.RFC3339)
	}

	return ticket
}

// newDomainProfile parses the free text bands. A band that cannot be parsed
// is a client error naming the field.
func newDomainProfile(request rest.QuoteRequest) (entity.CustomerProfile, error) {
	var err error

	profile := entity.CustomerProfile{
		DependentsCount: lo.FromPtr(request.DependentsCount),
		ExistingCover:   request.ExistingCover,
		HealthFlags: lo.Compact(lo.Map(request.HealthFlags, func(f string, _ int) string {
			return strings.ToLower(strings.TrimSpace(f))
		})),
		RiskTolerance:  value.ParseRiskTolerance(request.RiskTolerance),
		VehicleType:    value.ParseVehicleType(request.VehicleType),
		CityState:      request.CityState,
		ContactChannel: request.ContactChannel,
	}

	if profile.AgeBand, err = parseBand("age_band", request.AgeBand); err != nil {
		return entity.CustomerProfile{}, err
	}

	if profile.AnnualIncomeBand, err = parseBand("annual_income_band", request.AnnualIncomeBand); err != nil {
		return entity.CustomerProfile{}, err
	}

	if profile.PreferredPremiumBand, err = parseBand("preferred_premium_band", request.PreferredPremiumBand); err != nil {
		return entity.CustomerProfile{}, err
	}

	slices.Sort(profile.HealthFlags)

	return profile, nil
}

func parseBand(field, raw string) (*value.Band, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil //nolint:nilnil
	}

	band, err := value.ParseBand(raw)
	if err != nil {
		return nil, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseBand(%s): %w", field, err),
			failure.WithCode(errcodes.InvalidBand),
			failure.WithDescription(fmt.Sprintf("%s: %s", field, err)),
		)
	}

	return &band, nil
}
