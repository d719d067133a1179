package sweep

import (
	"fmt"
	"math"

	"pv-feasibility/internal/model"
	"pv-feasibility/internal/scenario"
)

// Strategy selects how the target metric is turned into a single
// minimisable objective.
type Strategy string

const (
	// StrategyMin returns the metric unchanged.
	StrategyMin Strategy = "min"
	// StrategyMax negates the metric, so an external minimiser maximises it.
	StrategyMax Strategy = "max"
	// StrategyGoalSeek returns metric - goal, zero at the target.
	StrategyGoalSeek Strategy = "goal_seek"
)

// Metric names a summary metric usable as an optimisation target.
type Metric string

const (
	MetricNPV         Metric = "npv"
	MetricLCOE        Metric = "lcoe"
	MetricBLCOE       Metric = "blcoe"
	MetricIRR         Metric = "irr"
	MetricPayback     Metric = "payback"
	MetricSelfCons    Metric = "self_consumption"
	MetricUtilisation Metric = "utilisation"
)

// ParseStrategy validates a strategy tag from an external boundary.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMin, StrategyMax, StrategyGoalSeek:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q (want min, max or goal_seek)",
		model.ErrInvalidArgument, s)
}

// ParseMetric validates a metric tag from an external boundary.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricNPV, MetricLCOE, MetricBLCOE, MetricIRR, MetricPayback,
		MetricSelfCons, MetricUtilisation:
		return Metric(s), nil
	}
	return "", fmt.Errorf("%w: unknown metric %q", model.ErrInvalidArgument, s)
}

func metricValue(s scenario.Summary, m Metric) (float64, error) {
	switch m {
	case MetricNPV:
		return s.NPV, nil
	case MetricLCOE:
		return s.LCOE, nil
	case MetricBLCOE:
		return s.BLCOE, nil
	case MetricIRR:
		if !s.IRRConverged {
			return 0, fmt.Errorf("objective: %w", scenario.ErrIRRNoConvergence)
		}
		return s.IRR, nil
	case MetricPayback:
		return s.PaybackYears, nil
	case MetricSelfCons:
		return s.SelfConsPct, nil
	case MetricUtilisation:
		return s.UtilisationPct, nil
	}
	return 0, fmt.Errorf("%w: unknown metric %q", model.ErrInvalidArgument, string(m))
}

// Objective exposes one summary metric as a single-argument numeric
// function of one mutated input variable, for consumption by an
// external optimiser. Every Evaluate call clones the base spec, so the
// adapter carries no mutable state and calls may run concurrently.
type Objective struct {
	base     *model.InputSpec
	variable model.Variable
	metric   Metric
	strategy Strategy
	goal     float64
}

// NewObjective validates the variable, metric and strategy tags up
// front; invalid names fail here rather than on the first evaluation.
func NewObjective(in *model.InputSpec, variable model.Variable, metric Metric, strategy Strategy, goal float64) (*Objective, error) {
	if _, err := model.ParseVariable(string(variable)); err != nil {
		return nil, err
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if strategy == StrategyGoalSeek && math.IsNaN(goal) {
		return nil, fmt.Errorf("%w: goal_seek requires a goal value", model.ErrInvalidArgument)
	}
	return &Objective{
		base:     in,
		variable: variable,
		metric:   metric,
		strategy: strategy,
		goal:     goal,
	}, nil
}

// Evaluate sets the variable to x, rebuilds the scenario and returns
// the objective value per the configured strategy.
func (o *Objective) Evaluate(x float64) (float64, error) {
	mutated, err := o.base.With(o.variable, x)
	if err != nil {
		return 0, err
	}
	sc, err := scenario.Build(mutated, scenario.WithoutHourlyDetail())
	if err != nil {
		return 0, err
	}
	v, err := metricValue(sc.Summary, o.metric)
	if err != nil {
		return 0, err
	}
	switch o.strategy {
	case StrategyMin:
		return v, nil
	case StrategyMax:
		return -v, nil
	case StrategyGoalSeek:
		return v - o.goal, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", model.ErrInvalidArgument, string(o.strategy))
}

// Evaluate is the one-shot form of the adapter: build the objective and
// evaluate it at a single mutated value.
func Evaluate(in *model.InputSpec, variable model.Variable, metric Metric, strategy Strategy, value, goal float64) (float64, error) {
	obj, err := NewObjective(in, variable, metric, strategy, goal)
	if err != nil {
		return 0, err
	}
	return obj.Evaluate(value)
}
