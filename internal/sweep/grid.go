package sweep

import (
	"fmt"
	"math"

	"pv-feasibility/internal/model"
)

// Linspace returns steps evenly spaced values from min to max inclusive.
func Linspace(min, max float64, steps int) []float64 {
	if steps == 1 {
		return []float64{min}
	}
	out := make([]float64, steps)
	delta := (max - min) / float64(steps-1)
	for i := range out {
		out[i] = min + delta*float64(i)
	}
	out[steps-1] = max
	return out
}

// CapacityGrid generates the ordered candidate-capacity grid.
//
// Log scale spans [1, max-min]: the lower bound collapses to 1 rather
// than min, and the upper bound is the requested range width, not max.
// This matches the sizing behaviour this engine replicates; callers who
// need the literal bounds should use linear scale.
func CapacityGrid(min, max float64, steps int, logScale bool) ([]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be >= 1", model.ErrInvalidArgument)
	}
	if !logScale {
		if max < min {
			return nil, fmt.Errorf("%w: max capacity %.0f below min %.0f", model.ErrInvalidArgument, max, min)
		}
		return Linspace(min, max, steps), nil
	}
	if max-min <= 0 {
		return nil, fmt.Errorf("%w: log-scale grid requires max > min", model.ErrInvalidArgument)
	}
	logDelta := math.Log10(max - min)
	exps := Linspace(0, logDelta, steps)
	out := make([]float64, steps)
	for i, e := range exps {
		out[i] = math.Pow(10, e)
	}
	return out, nil
}
