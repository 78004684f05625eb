package scoring

import (
	"fmt"
	"strings"

	"insurance_desk/internal/domain/entity"
	"insurance_desk/internal/domain/value"
)

// Summary is the one-line pitch for a policy shown next to a recommendation.
func Summary(profile entity.CustomerProfile, policy entity.Policy, premium int64) string {
	switch policy.Category {
	case value.CategoryHealth:
		if profile.DependentsCount > 0 && policy.NameContains("family") {
			return "Covers dependents with balanced premium"
		}
	case value.CategoryProtection:
		if policy.CriticalIllnessCount > 0 {
			return fmt.Sprintf("High coverage with %d critical illnesses covered", policy.CriticalIllnessCount)
		}

		return "High coverage at affordable premium"
	case value.CategoryPension:
		return "Secure retirement planning with guaranteed benefits"
	case value.CategorySavings:
		return "Combines savings with life insurance protection"
	case value.CategoryULIP:
		return "Investment-linked insurance with market exposure"
	case value.CategoryAnnuity:
		if len(policy.AnnuityPayoutFrequency) > 0 {
			return fmt.Sprintf("Guaranteed regular income with %s payout options",
				strings.Join(policy.AnnuityPayoutFrequency, ", "))
		}

		return "Guaranteed regular income for retirement"
	}

	if policy.UIN != "" {
		return fmt.Sprintf("UIN: %s - Lowest annual premium approx %d with broad suitability", policy.UIN, premium)
	}

	return fmt.Sprintf("Lowest annual premium approx %d with broad suitability", premium)
}
