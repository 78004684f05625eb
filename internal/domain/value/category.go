package value

import (
	"fmt"
	"strings"
)

// Category is the product line a policy belongs to. The catalog is split into
// one source file per category.
type Category string

const (
	CategoryHealth     Category = "health"
	CategoryPension    Category = "pension"
	CategoryProtection Category = "protection"
	CategorySavings    Category = "savings"
	CategoryULIP       Category = "ulip"
	CategoryAnnuity    Category = "annuity"
	CategoryMotor      Category = "motor"
)

// Categories lists categories in catalog load order.
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryPension,
		CategoryProtection,
		CategorySavings,
		CategoryULIP,
		CategoryAnnuity,
		CategoryMotor,
	}
}

// ParseCategory accepts both the short form ("ulip") and the display label
// produced by the scrapers ("ULIP Plan").
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.TrimSuffix(normalized, " plans")
	normalized = strings.TrimSuffix(normalized, " plan")
	normalized = strings.TrimSpace(normalized)

	for _, c := range Categories() {
		if string(c) == normalized {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	return string(c)
}

// Label is the human readable product line, e.g. "Protection Plan".
func (c Category) Label() string {
	switch c {
	case CategoryULIP:
		return "ULIP Plan"
	case "":
		return ""
	default:
		return strings.ToUpper(string(c[:1])) + string(c[1:]) + " Plan"
	}
}
