package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"insurance_desk/internal/domain/value"
)

func TestParseBand(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		input string
		band  value.Band
	}{
		{input: "25-35", band: value.Band{Min: 25, Max: 35}},
		{input: "10k-25k", band: value.Band{Min: 10_000, Max: 25_000}},
		{input: "10-25k", band: value.Band{Min: 10_000, Max: 25_000}},
		{input: "5L-10L", band: value.Band{Min: 500_000, Max: 1_000_000}},
		{input: "50k - 1L", band: value.Band{Min: 50_000, Max: 100_000}},
		{input: "1 to 2 Cr", band: value.Band{Min: 10_000_000, Max: 20_000_000}},
		{input: "<5L", band: value.Band{Min: 0, Max: 500_000}},
		{input: "up to 25k", band: value.Band{Min: 0, Max: 25_000}},
		{input: ">10L", band: value.Band{Min: 1_000_000, Max: value.Unbounded}},
		{input: "60+", band: value.Band{Min: 60, Max: value.Unbounded}},
		{input: "₹15,000", band: value.Band{Min: 15_000, Max: 15_000}},
		{input: "2.5L", band: value.Band{Min: 250_000, Max: 250_000}},
		{input: "25-35 years", band: value.Band{Min: 25, Max: 35}},
		{input: "25yrs - 35yrs", band: value.Band{Min: 25, Max: 35}},
		{input: "60+ Years", band: value.Band{Min: 60, Max: value.Unbounded}},
		{input: "40 yr", band: value.Band{Min: 40, Max: 40}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(*testing.T) {
			band, err := value.ParseBand(tc.input)
			rq.NoError(err)
			rq.InDelta(tc.band.Min, band.Min, 1e-6)
			rq.InDelta(tc.band.Max, band.Max, 1e-6)
		})
	}
}

func TestParseBandInvalid(t *testing.T) {
	rq := require.New(t)

	for _, input := range []string{"", "cheap", "10x-20x", "35-25", "-", "k-", "years"} {
		_, err := value.ParseBand(input)
		rq.ErrorIs(err, value.ErrInvalidBand, input)
	}
}

func TestBandDistanceAndOverlap(t *testing.T) {
	rq := require.New(t)

	band := value.Band{Min: 10_000, Max: 25_000}

	rq.True(band.Contains(10_000))
	rq.True(band.Contains(25_000))
	rq.False(band.Contains(25_001))

	rq.Zero(band.Distance(12_000))
	rq.InDelta(5_000, band.Distance(30_000), 1e-9)
	rq.InDelta(2_000, band.Distance(8_000), 1e-9)

	rq.True(band.Overlaps(20_000, 90_000))
	rq.True(band.Overlaps(0, 10_000))
	rq.False(band.Overlaps(25_001, 30_000))

	rq.Equal("10000-25000", band.String())
	rq.Equal("60+", value.Band{Min: 60, Max: value.Unbounded}.String())
	rq.Equal("18", value.Band{Min: 18, Max: 18}.String())
}
