package decision

import (
	"fmt"
	"math"
	"math/rand"

	"chess_trainer/internal/errors"
)

// WeightTolerance bounds how far a distribution may drift from a positive sum.
const WeightTolerance = 1e-9

// RandomSource is the only randomness the core consumes. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Select draws one rank from weights. The weights need not be normalised.
func Select(weights []float64, rng RandomSource) (int, error) {
	total, err := distributionTotal(weights)
	if err != nil {
		return 0, err
	}

	u := rng.Float64() * total
	var cumulative float64
	last := 0
	for r, w := range weights {
		if w == 0 {
			continue
		}
		last = r
		cumulative += w
		if cumulative > u {
			return r, nil
		}
	}
	// rounding can leave u just above the final cumulative sum
	return last, nil
}

func distributionTotal(weights []float64) (float64, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: no weights", errors.ErrInvalidDistribution)
	}
	var total float64
	for r, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, fmt.Errorf("%w: weight[%d] = %v", errors.ErrInvalidDistribution, r, w)
		}
		total += w
	}
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= WeightTolerance {
		return 0, fmt.Errorf("%w: weights sum to %v", errors.ErrInvalidDistribution, total)
	}
	return total, nil
}
