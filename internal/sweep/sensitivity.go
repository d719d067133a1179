package sweep

import (
	"context"
	"fmt"
	"math"

	"pv-feasibility/internal/model"
)

// SensitivityResult nests one capacity sweep per value of a secondary
// input variable.
type SensitivityResult struct {
	Variable model.Variable

	// Grid holds the assigned secondary values in order: rounded to
	// four decimals and, for %-unit variables, already divided by 100.
	Grid []float64

	// Sweeps maps assigned secondary value to its capacity sweep.
	Sweeps map[float64]*CapacityResult
}

// SensitivitySpec bundles the two grid definitions for a 2-D run.
type SensitivitySpec struct {
	Variable model.Variable
	SecMin   float64
	SecMax   float64
	SecSteps int

	CapMin      float64
	CapMax      float64
	CapSteps    int
	CapLogScale bool
}

// Sensitivity runs a full capacity sweep for each value of the secondary
// variable. Secondary values for %-unit variables are supplied on the
// 0-100 scale and divided by 100 before assignment. Each iteration
// clones the input spec; the outer loop is sequential (inner sweeps
// already saturate the worker pool) and checks ctx between iterations.
func Sensitivity(ctx context.Context, in *model.InputSpec, spec SensitivitySpec) (*SensitivityResult, error) {
	if _, err := model.ParseVariable(string(spec.Variable)); err != nil {
		return nil, err
	}
	if spec.SecSteps < 1 {
		return nil, fmt.Errorf("%w: secondary steps must be >= 1", model.ErrInvalidArgument)
	}

	res := &SensitivityResult{
		Variable: spec.Variable,
		Sweeps:   make(map[float64]*CapacityResult, spec.SecSteps),
	}

	for _, raw := range Linspace(spec.SecMin, spec.SecMax, spec.SecSteps) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		val := math.Round(raw*1e4) / 1e4
		if spec.Variable.IsPercent(in) {
			val /= 100
		}
		if _, dup := res.Sweeps[val]; dup {
			continue
		}

		mutated, err := in.With(spec.Variable, val)
		if err != nil {
			return nil, fmt.Errorf("secondary value %g: %w", val, err)
		}
		sweep, err := Capacity(ctx, mutated, spec.CapMin, spec.CapMax, spec.CapSteps, spec.CapLogScale)
		if err != nil {
			return nil, fmt.Errorf("secondary value %g: %w", val, err)
		}

		res.Grid = append(res.Grid, val)
		res.Sweeps[val] = sweep
	}
	return res, nil
}
