package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unbounded is the upper bound of open bands such as ">5L" or "60+".
const Unbounded = 1e12

// Band is a closed numeric range used for ages, premiums and incomes.
type Band struct {
	Min float64
	Max float64
}

//nolint:gochecknoglobals
var bandUnits = map[string]float64{
	"":       1,
	"k":      1e3,
	"l":      1e5,
	"lac":    1e5,
	"lakh":   1e5,
	"lakhs":  1e5,
	"cr":     1e7,
	"crore":  1e7,
	"crores": 1e7,
	"yr":     1,
	"yrs":    1,
	"year":   1,
	"years":  1,
}

// ageSuffixes are dropped from the end of a band so "60+ years" reads as "60+".
//
//nolint:gochecknoglobals
var ageSuffixes = []string{"years", "year", "yrs", "yr"}

//nolint:gochecknoglobals
var bandNoise = strings.NewReplacer("₹", "", "rs.", "", "inr", "", ",", "", " ", "", "_", "")

// ParseBand understands "a-b", "a to b", "<b", "upto b", ">a", "a+" and a single
// number, optionally followed by "years". Units k, L (lakh) and Cr (crore) apply per bound; a bound without a
// unit takes the unit of the other bound, so "10-25k" is 10 000..25 000.
func ParseBand(s string) (Band, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "up to", "upto")
	normalized = strings.ReplaceAll(normalized, " to ", "-")
	normalized = bandNoise.Replace(normalized)

	for _, suffix := range ageSuffixes {
		if trimmed, ok := strings.CutSuffix(normalized, suffix); ok {
			normalized = trimmed

			break
		}
	}

	if normalized == "" {
		return Band{}, fmt.Errorf("%w: empty", ErrInvalidBand)
	}

	var (
		band Band
		err  error
	)

	switch {
	case strings.HasPrefix(normalized, "<"), strings.HasPrefix(normalized, "upto"), strings.HasPrefix(normalized, "under"):
		band, err = parseOpenBand(normalized, "<", "upto", "under")
		band.Min, band.Max = 0, band.Min
	case strings.HasPrefix(normalized, ">"), strings.HasPrefix(normalized, "above"), strings.HasPrefix(normalized, "over"):
		band, err = parseOpenBand(normalized, ">", "above", "over")
		band.Max = Unbounded
	case strings.HasSuffix(normalized, "+"):
		band, err = parseOpenBand(strings.TrimSuffix(normalized, "+"))
		band.Max = Unbounded
	case strings.Contains(normalized[1:], "-"):
		band, err = parseClosedBand(normalized)
	default:
		band, err = parseOpenBand(normalized)
		band.Max = band.Min
	}

	if err != nil {
		return Band{}, fmt.Errorf("%w: %q: %w", ErrInvalidBand, s, err)
	}

	if band.Min > band.Max {
		return Band{}, fmt.Errorf("%w: %q: lower bound exceeds upper bound", ErrInvalidBand, s)
	}

	return band, nil
}

func parseOpenBand(s string, prefixes ...string) (Band, error) {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimPrefix(s, p)

			break
		}
	}

	s = strings.TrimPrefix(s, "=")

	amount, unit, _, err := parseAmount(s)
	if err != nil {
		return Band{}, err
	}

	return Band{Min: amount * unit}, nil
}

func parseClosedBand(s string) (Band, error) {
	lo, hi, _ := strings.Cut(s, "-")

	loAmount, loUnit, loHasUnit, err := parseAmount(lo)
	if err != nil {
		return Band{}, fmt.Errorf("lower bound: %w", err)
	}

	hiAmount, hiUnit, hiHasUnit, err := parseAmount(hi)
	if err != nil {
		return Band{}, fmt.Errorf("upper bound: %w", err)
	}

	switch {
	case !loHasUnit && hiHasUnit:
		loUnit = hiUnit
	case loHasUnit && !hiHasUnit:
		hiUnit = loUnit
	}

	return Band{Min: loAmount * loUnit, Max: hiAmount * hiUnit}, nil
}

func parseAmount(s string) (amount, unit float64, hasUnit bool, err error) {
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}

	if i == 0 {
		return 0, 0, false, fmt.Errorf("no number in %q", s)
	}

	amount, err = strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("strconv.ParseFloat: %w", err)
	}

	suffix := s[i:]

	unit, ok := bandUnits[suffix]
	if !ok {
		return 0, 0, false, fmt.Errorf("unknown unit %q", suffix)
	}

	return amount, unit, suffix != "", nil
}

func (b Band) Contains(x float64) bool {
	return x >= b.Min && x <= b.Max
}

// Overlaps reports whether [lo, hi] intersects the band.
func (b Band) Overlaps(lo, hi float64) bool {
	return hi >= b.Min && lo <= b.Max
}

// Distance is how far x lies outside the band, 0 inside it.
func (b Band) Distance(x float64) float64 {
	if b.Contains(x) {
		return 0
	}

	return math.Min(math.Abs(x-b.Min), math.Abs(x-b.Max))
}

func (b Band) String() string {
	format := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

	switch {
	case b.Max >= Unbounded:
		return format(b.Min) + "+"
	case b.Min == b.Max:
		return format(b.Min)
	default:
		return format(b.Min) + "-" + format(b.Max)
	}
}
