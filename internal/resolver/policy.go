package resolver

import (
	"errors"
	"fmt"
	"math"
)

// Policy validates a raw numeric candidate before it is accepted.
// A nil return accepts the candidate.
type Policy func(value float64) error

// Positive accepts finite, strictly positive values. This is the
// policy for the spot gold price, where no realistic upper bound is
// known.
func Positive() Policy {
	return func(value float64) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return errors.New("not a finite number")
		}
		if value <= 0 {
			return errors.New("not strictly positive")
		}
		return nil
	}
}

// InRange accepts finite values strictly inside (min, max). This is
// the policy for conversion rates: a wildly out-of-band rate is more
// dangerous to accept than to reject, since it would silently corrupt
// every downstream price. Catches wrong-pair responses, stale cached
// zeros, and inverse-rate unit errors.
func InRange(min, max float64) Policy {
	return func(value float64) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return errors.New("not a finite number")
		}
		if value <= min || value >= max {
			return fmt.Errorf("outside plausible band (%g, %g)", min, max)
		}
		return nil
	}
}
