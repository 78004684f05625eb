package entity

import (
	"slices"
	"strings"

	"insurance_desk/internal/domain/value"
)

// estimatedPremiumRate approximates a yearly premium from the smallest sum
// assured when a brochure quotes no premium table.
const estimatedPremiumRate = 0.01

// Policy is one catalog record produced by the brochure scrapers. Records are
// immutable after the catalog is loaded.
type Policy struct {
	ID          string         `json:"policy_id"`
	UIN         string         `json:"uin,omitempty"`
	Name        string         `json:"policy_name"`
	Insurer     string         `json:"insurer,omitempty"`
	Category    value.Category `json:"category"`
	Type        string         `json:"type,omitempty"`
	ProductType string         `json:"product_type,omitempty"`

	// PremiumYearly maps a sum assured (as text) to the yearly premium.
	PremiumYearly     map[string]float64 `json:"premium_yearly,omitempty"`
	SumAssuredOptions []float64          `json:"sum_assured_options,omitempty"`
	SumInsured        []float64          `json:"sum_insured,omitempty"`

	Eligibility *Eligibility `json:"eligibility,omitempty"`
	EntryAgeMin *int         `json:"entry_age_min,omitempty"`
	EntryAgeMax *int         `json:"entry_age_max,omitempty"`
	MaturityAge *int         `json:"maturity_age,omitempty"`

	JointLifeAvailable     *bool    `json:"joint_life_available,omitempty"`
	Riders                 []Rider  `json:"riders,omitempty"`
	CriticalIllnessCount   int      `json:"critical_illness_count,omitempty"`
	AnnuityPayoutFrequency []string `json:"annuity_payout_frequency,omitempty"`
	PremiumPaymentModes    []string `json:"premium_payment_modes,omitempty"`
	Exclusions             []string `json:"exclusions,omitempty"`

	AIEnrichment *AIEnrichment `json:"ai_enrichment,omitempty"`
}

type Eligibility struct {
	AdultMinAge *int `json:"adult_min_age,omitempty"`
	AdultMaxAge *int `json:"adult_max_age,omitempty"`
	ChildMinAge *int `json:"child_min_age,omitempty"`
	ChildMaxAge *int `json:"child_max_age,omitempty"`
}

type Rider struct {
	Name    string  `json:"name"`
	Premium float64 `json:"premium,omitempty"`
}

// AIEnrichment holds free text produced by the enrichment command. Shapes
// of benefits differ between model runs, so they stay loosely typed.
type AIEnrichment struct {
	KeyFeatures    []string       `json:"key_features,omitempty"`
	UniqueFeatures []string       `json:"unique_features,omitempty"`
	Benefits       map[string]any `json:"benefits,omitempty"`
	Model          string         `json:"model,omitempty"`
}

// MinPremium returns the lowest quoted yearly premium. Without a premium table
// it falls back to 1% of the smallest sum assured and reports estimated=true.
func (p Policy) MinPremium() (premium float64, estimated, ok bool) {
	if len(p.PremiumYearly) > 0 {
		first := true

		for _, v := range p.PremiumYearly {
			if first || v < premium {
				premium = v
				first = false
			}
		}

		return premium, false, true
	}

	sums := slices.Concat(p.SumAssuredOptions, p.SumInsured)
	if len(sums) == 0 {
		return 0, false, false
	}

	return slices.Min(sums) * estimatedPremiumRate, true, true
}

// AgeWindow is the entry age eligibility range. Eligibility table values win
// over the flat entry_age fields, maturity age closes the window when no
// entry maximum is published.
func (p Policy) AgeWindow() (lo, hi int, ok bool) {
	var minAge, maxAge *int

	if p.Eligibility != nil {
		minAge, maxAge = p.Eligibility.AdultMinAge, p.Eligibility.AdultMaxAge
	}

	if minAge == nil {
		minAge = p.EntryAgeMin
	}

	if maxAge == nil {
		maxAge = p.EntryAgeMax
	}

	if maxAge == nil {
		maxAge = p.MaturityAge
	}

	if minAge == nil || maxAge == nil {
		return 0, 0, false
	}

	return *minAge, *maxAge, true
}

func (p Policy) HasEnrichment() bool {
	return p.AIEnrichment != nil && len(p.AIEnrichment.KeyFeatures) > 0
}

// NameContains is a case-insensitive search in the policy name.
func (p Policy) NameContains(words ...string) bool {
	name := strings.ToLower(p.Name)

	for _, w := range words {
		if strings.Contains(name, strings.ToLower(w)) {
			return true
		}
	}

	return false
}
