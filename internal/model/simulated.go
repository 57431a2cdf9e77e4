package model

import (
	"math"
	"math/rand/v2"
)

// fluctuation bounds for the simulated suggestion, relative to the current
// price: -10% to +15%.
const (
	simFloor   = -0.10
	simCeiling = 0.15
)

// Simulated is the heuristic stand-in used on the single-product path when
// neither a trained model nor competitor data can produce an estimate.
// Outputs built on it must be labeled "simulated", never "model-predicted".
type Simulated struct {
	uniform func() float64
}

// NewSimulated builds the stand-in. A nil source falls back to the global
// rand; tests inject a deterministic one.
func NewSimulated(uniform func() float64) *Simulated {
	if uniform == nil {
		uniform = rand.Float64
	}
	return &Simulated{uniform: uniform}
}

// SuggestFromCurrent nudges the current price by a random fluctuation within
// the configured bounds, rounded to cents.
func (s *Simulated) SuggestFromCurrent(current float64) float64 {
	f := simFloor + s.uniform()*(simCeiling-simFloor)
	return math.Round(current*(1+f)*100) / 100
}
