package model

import "fmt"

// HoursPerYear is the length of an annual hourly series (non-leap year).
const HoursPerYear = 8760

// HourlySeries is one value per hour of a year, positionally indexed
// (hour 0 = Jan 1 00:00). Units depend on context: kWh for load and
// reference yield, kWh/kWp for specific yield.
type HourlySeries []float64

// Sum returns the annual total.
func (s HourlySeries) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Clone returns an independent copy.
func (s HourlySeries) Clone() HourlySeries {
	if s == nil {
		return nil
	}
	out := make(HourlySeries, len(s))
	copy(out, s)
	return out
}

// FlatSeries spreads an annual total uniformly over the year.
func FlatSeries(annualTotal float64) HourlySeries {
	s := make(HourlySeries, HoursPerYear)
	v := annualTotal / HoursPerYear
	for i := range s {
		s[i] = v
	}
	return s
}

// NormalizeYield derives the specific-yield series (kWh/kWp per hour)
// from a raw reference-yield series:
//
//	sy[h] = max(refYield[h], 0) * (1 - postprocLoss) / refCapacity
//
// The load series is only consulted for positional alignment; both
// series must be exactly one non-leap year of hourly samples.
func NormalizeYield(refYield, load HourlySeries, refCapacity, postprocLoss float64) (HourlySeries, error) {
	if len(refYield) != len(load) {
		return nil, fmt.Errorf("%w: reference yield has %d samples, load has %d",
			ErrShapeMismatch, len(refYield), len(load))
	}
	if len(refYield) != HoursPerYear {
		return nil, fmt.Errorf("%w: expected %d hourly samples, got %d",
			ErrShapeMismatch, HoursPerYear, len(refYield))
	}
	if refCapacity <= 0 {
		return nil, fmt.Errorf("%w: reference capacity must be > 0", ErrInvalidArgument)
	}
	if postprocLoss < 0 || postprocLoss >= 1 {
		return nil, fmt.Errorf("%w: post-processing loss must be in [0, 1)", ErrInvalidArgument)
	}

	sy := make(HourlySeries, len(refYield))
	for h, v := range refYield {
		if v < 0 {
			v = 0
		}
		sy[h] = v * (1 - postprocLoss) / refCapacity
	}
	return sy, nil
}
