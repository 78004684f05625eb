package entity

import (
	"slices"
	"strconv"
	"strings"

	"insurance_desk/internal/domain/value"
)

// CustomerProfile is what the chatbot collected about the customer. Nil bands
// mean the customer did not answer the question.
type CustomerProfile struct {
	AgeBand              *value.Band
	DependentsCount      int
	AnnualIncomeBand     *value.Band
	ExistingCover        string
	PreferredPremiumBand *value.Band
	RiskTolerance        value.RiskTolerance
	VehicleType          value.VehicleType
	HealthFlags          []string
	CityState            string
	ContactChannel       string
}

// Key is a stable fingerprint of every field that influences scoring.
func (c CustomerProfile) Key() string {
	band := func(b *value.Band) string {
		if b == nil {
			return "-"
		}

		return b.String()
	}

	flags := slices.Clone(c.HealthFlags)
	slices.Sort(flags)

	return strings.Join([]string{
		band(c.AgeBand),
		strconv.Itoa(c.DependentsCount),
		band(c.PreferredPremiumBand),
		string(c.RiskTolerance),
		string(c.VehicleType),
		strings.Join(flags, ","),
	}, "|")
}
