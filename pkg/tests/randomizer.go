package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	Intn    func(n int) int
	Seed    int64
}

// NewRandomizer seeds from the clock. The seed is kept so a failing property
// test can log it and be replayed with NewSeededRandomizer.
func NewRandomizer() Randomizer {
	return NewSeededRandomizer(time.Now().UnixNano())
}

func NewSeededRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
		Seed:    seed,
	}
}

// OneOf returns a random element of values.
func OneOf[T any](r Randomizer, values ...T) T {
	return values[r.Intn(len(values))]
}
