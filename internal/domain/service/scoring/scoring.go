// Package scoring ranks catalog policies against a customer profile with a
// fixed additive heuristic. Every function here is pure.
package scoring

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/value"
)

type Term string

const (
	TermRisk            Term = "risk"
	TermDependents      Term = "dependents"
	TermVehicle         Term = "vehicle"
	TermPremium         Term = "premium"
	TermHealthFlags     Term = "health_flags"
	TermAge             Term = "age"
	TermUIN             Term = "uin"
	TermCriticalIllness Term = "critical_illness"
	TermEnrichment      Term = "enrichment"
)

const (
	defaultRiskPoints       = 3
	protectionDependentsPts = 2
	familyHealthPoints      = 4
	vehiclePoints           = 4
	premiumQuotedPoints     = 5
	premiumEstimatedPoints  = 4
	premiumDistanceDivisor  = 10_000
	healthFlagsPoints       = 2
	agePoints               = 2
	uinPoints               = 0.5
	criticalIllnessPoints   = 1
	enrichmentPoints        = 0.5
	strongRiskFit           = 4
)

// riskPoints by category for conservative, balanced and aggressive customers.
//
//nolint:gochecknoglobals
var riskPoints = map[value.Category]map[value.RiskTolerance]float64{
	value.CategoryHealth:     {value.RiskConservative: 3, value.RiskBalanced: 4, value.RiskAggressive: 3},
	value.CategoryProtection: {value.RiskConservative: 5, value.RiskBalanced: 5, value.RiskAggressive: 5},
	value.CategoryPension:    {value.RiskConservative: 4, value.RiskBalanced: 4, value.RiskAggressive: 3},
	value.CategorySavings:    {value.RiskConservative: 4, value.RiskBalanced: 4, value.RiskAggressive: 3},
	value.CategoryULIP:       {value.RiskConservative: 2, value.RiskBalanced: 4, value.RiskAggressive: 5},
	value.CategoryAnnuity:    {value.RiskConservative: 5, value.RiskBalanced: 3, value.RiskAggressive: 2},
}

// Contribution is one fired heuristic term. Note is empty for terms that do
// not deserve a mention in the rationale.
type Contribution struct {
	Term   Term
	Points float64
	Note   string
}

type Result struct {
	Score         float64
	Contributions []Contribution
}

func (r *Result) add(term Term, points float64, note string) {
	if points <= 0 {
		return
	}

	r.Score += points
	r.Contributions = append(r.Contributions, Contribution{Term: term, Points: points, Note: note})
}

// Matched lists the names of the fired terms in evaluation order.
func (r Result) Matched() []string {
	matched := make([]string, 0, len(r.Contributions))

	for _, c := range r.Contributions {
		matched = append(matched, string(c.Term))
	}

	return matched
}

// Rationale joins the notes of the fired terms. It falls back to fallback when
// no term left a note.
func (r Result) Rationale(fallback string) string {
	notes := make([]string, 0, len(r.Contributions))

	for _, c := range r.Contributions {
		if c.Note != "" {
			notes = append(notes, c.Note)
		}
	}

	if len(notes) == 0 {
		return fallback
	}

	return strings.Join(notes, "; ")
}

// Score evaluates every term independently and sums the points.
func Score(profile entity.CustomerProfile, policy entity.Policy) Result {
	var r Result

	scoreRisk(&r, profile, policy)
	scoreDependents(&r, profile, policy)
	scoreVehicle(&r, profile, policy)
	scorePremium(&r, profile, policy)

	if len(profile.HealthFlags) > 0 && policy.Category == value.CategoryHealth {
		r.add(TermHealthFlags, healthFlagsPoints, "covers declared health conditions")
	}

	scoreAge(&r, profile, policy)

	if policy.UIN != "" {
		r.add(TermUIN, uinPoints, "")
	}

	if policy.CriticalIllnessCount > 0 {
		r.add(TermCriticalIllness, criticalIllnessPoints,
			fmt.Sprintf("covers %d critical illnesses", policy.CriticalIllnessCount))
	}

	if policy.HasEnrichment() {
		r.add(TermEnrichment, enrichmentPoints, "")
	}

	return r
}

func scoreRisk(r *Result, profile entity.CustomerProfile, policy entity.Policy) {
	if profile.RiskTolerance == "" {
		return
	}

	table, ok := riskPoints[policy.Category]
	if !ok {
		return
	}

	points := float64(defaultRiskPoints)
	if profile.RiskTolerance.Known() {
		points = table[profile.RiskTolerance]
	}

	var note string
	if points >= strongRiskFit {
		note = fmt.Sprintf("suits a %s risk appetite", profile.RiskTolerance)
	}

	r.add(TermRisk, points, note)
}

func scoreDependents(r *Result, profile entity.CustomerProfile, policy entity.Policy) {
	if profile.DependentsCount <= 0 {
		return
	}

	switch policy.Category {
	case value.CategoryHealth:
		if policy.NameContains("family") {
			r.add(TermDependents, familyHealthPoints, "family cover for your dependents")
		}
	case value.CategoryProtection:
		r.add(TermDependents, protectionDependentsPts,
			fmt.Sprintf("protects %d dependents", profile.DependentsCount))
	}
}

func scoreVehicle(r *Result, profile entity.CustomerProfile, policy entity.Policy) {
	if policy.Category != value.CategoryMotor {
		return
	}

	var match bool

	switch profile.VehicleType {
	case value.VehicleCar:
		match = policy.NameContains("car")
	case value.VehicleBike:
		match = policy.NameContains("two-wheeler", "bike")
	}

	if match {
		r.add(TermVehicle, vehiclePoints, "covers your "+string(profile.VehicleType))
	}
}

// scorePremium gives full points inside the budget and partial credit that
// decays by one point per 10 000 outside it. Estimated premiums are worth less.
func scorePremium(r *Result, profile entity.CustomerProfile, policy entity.Policy) {
	if profile.PreferredPremiumBand == nil {
		return
	}

	premium, estimated, ok := policy.MinPremium()
	if !ok {
		return
	}

	full := float64(premiumQuotedPoints)
	label := "premium"

	if estimated {
		full = premiumEstimatedPoints
		label = "estimated premium"
	}

	band := *profile.PreferredPremiumBand
	if band.Contains(premium) {
		r.add(TermPremium, full, fmt.Sprintf("%s ₹%.0f fits your budget", label, premium))

		return
	}

	r.add(TermPremium, max(0, full-band.Distance(premium)/premiumDistanceDivisor), "")
}

func scoreAge(r *Result, profile entity.CustomerProfile, policy entity.Policy) {
	if profile.AgeBand == nil {
		return
	}

	lo, hi, ok := policy.AgeWindow()
	if !ok {
		return
	}

	if profile.AgeBand.Overlaps(float64(lo), float64(hi)) {
		r.add(TermAge, agePoints, fmt.Sprintf("entry age %d-%d fits your age", lo, hi))
	}
}

// Ranked pairs a policy with its score.
type Ranked struct {
	Policy entity.Policy
	Result Result
}

// Rank scores every policy and returns at most limit entries ordered by
// descending score. Ties keep catalog order.
func Rank(profile entity.CustomerProfile, policies []entity.Policy, limit int) []Ranked {
	ranked := make([]Ranked, 0, len(policies))

	for _, p := range policies {
		ranked = append(ranked, Ranked{Policy: p, Result: Score(profile, p)})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.Result.Score, a.Result.Score)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
