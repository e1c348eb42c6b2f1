// Package dice provides the seeded randomness primitives shared by the
// battle engine, the generators, and the event dispatcher.
package dice

import (
	"math/rand"

	apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"
)

// ErrInvalidBounds indicates a roll request where min exceeds max.
var ErrInvalidBounds = apperrors.New(apperrors.CodeDiceInvalidBounds, "roll lower bound exceeds upper bound")

// Between returns a uniform integer in [min, max] inclusive.
//
// Between is deterministic with respect to the provided rng: the same
// source state and bounds always produce the same value.
func Between(rng *rand.Rand, min, max int) (int, error) {
	if min > max {
		return 0, ErrInvalidBounds
	}
	if min == max {
		return min, nil
	}
	return min + rng.Intn(max-min+1), nil
}

// Percent returns a uniform draw in [0, 100).
func Percent(rng *rand.Rand) int {
	return rng.Intn(100)
}

// Chance reports whether a uniform [0,100) draw lands strictly below pct.
// A pct of 0 never succeeds; 100 or more always succeeds.
func Chance(rng *rand.Rand, pct int) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return Percent(rng) < pct
}
