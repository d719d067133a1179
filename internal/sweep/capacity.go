package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pv-feasibility/internal/model"
	"pv-feasibility/internal/scenario"
)

// CapacityResult is the outcome of one capacity sweep. Built fresh per
// invocation; the contained scenarios are owned by the result.
type CapacityResult struct {
	// Grid is the candidate grid as generated, before integer rounding.
	Grid []float64

	// Capacities are the rounded candidates in ascending order, after
	// deduplication (a coarse log grid rounds its lowest points onto
	// the same integer).
	Capacities []int

	// Scenarios maps rounded capacity to the scenario built for it.
	Scenarios map[int]*scenario.Scenario

	// Aggregate holds the summary rows in Capacities order.
	Aggregate []scenario.Summary

	// Best is the scenario with the maximal NPV. Selection is
	// unconditional: negative-NPV candidates are eligible, matching
	// the sizing behaviour this engine replicates (only charting
	// filtered by sign).
	Best *scenario.Scenario
}

// Capacity sweeps the scenario engine over a grid of PV capacities.
// Each candidate runs on its own cloned InputSpec, so candidates are
// evaluated in parallel on a bounded worker pool; ctx cancels in-flight
// work.
func Capacity(ctx context.Context, in *model.InputSpec, min, max float64, steps int, logScale bool) (*CapacityResult, error) {
	grid, err := CapacityGrid(min, max, steps, logScale)
	if err != nil {
		return nil, err
	}

	// Round and dedup, preserving the grid's ascending order.
	caps := make([]int, 0, len(grid))
	seen := make(map[int]bool, len(grid))
	for _, c := range grid {
		k := int(math.Round(c))
		if !seen[k] {
			seen[k] = true
			caps = append(caps, k)
		}
	}

	scenarios := make([]*scenario.Scenario, len(caps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, kwp := range caps {
		i, kwp := i, kwp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sc, err := scenario.Build(in.WithCapacity(float64(kwp)), scenario.WithoutHourlyDetail())
			if err != nil {
				return fmt.Errorf("capacity %d kWp: %w", kwp, err)
			}
			scenarios[i] = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &CapacityResult{
		Grid:       grid,
		Capacities: caps,
		Scenarios:  make(map[int]*scenario.Scenario, len(caps)),
		Aggregate:  make([]scenario.Summary, len(caps)),
	}
	for i, kwp := range caps {
		res.Scenarios[kwp] = scenarios[i]
		res.Aggregate[i] = scenarios[i].Summary
	}
	res.Best = res.selectBest()
	return res, nil
}

// selectBest returns the scenario with maximal NPV; first wins on ties.
func (r *CapacityResult) selectBest() *scenario.Scenario {
	var best *scenario.Scenario
	bestNPV := math.Inf(-1)
	for _, kwp := range r.Capacities {
		sc := r.Scenarios[kwp]
		if sc.Summary.NPV > bestNPV {
			bestNPV = sc.Summary.NPV
			best = sc
		}
	}
	return best
}
