package scenario

import (
	"errors"
	"math"
)

// IRR solver budget. Newton with a damped step, falling back to a
// bracketed bisection when Newton wanders.
const (
	irrMaxNewtonIters    = 100
	irrMaxBisectionIters = 200
	irrTolerance         = 1e-9
	irrMinRate           = -0.9999
	irrMaxRate           = 10.0
)

var (
	// ErrIRRNoSignChange means the cashflow stream never changes sign,
	// so no internal rate of return exists.
	ErrIRRNoSignChange = errors.New("irr: cashflow stream has no sign change")

	// ErrIRRNoConvergence means the root-find exhausted its iteration
	// budget without zeroing the NPV.
	ErrIRRNoConvergence = errors.New("irr: root-find did not converge")
)

// AnnuityPayment returns the fixed periodic repayment (positive) that
// amortises principal over the given number of periods at the given
// per-period interest rate.
func AnnuityPayment(rate float64, periods int, principal float64) float64 {
	if periods <= 0 || principal == 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(periods)
	}
	growth := math.Pow(1+rate, float64(periods))
	return principal * rate * growth / (growth - 1)
}

// npvAt evaluates the net present value of a year-indexed cashflow
// stream (cashflows[0] at t=0) at the given discount rate, plus its
// derivative with respect to the rate.
func npvAt(cashflows []float64, rate float64) (npv, deriv float64) {
	for t, cf := range cashflows {
		df := math.Pow(1+rate, float64(t))
		npv += cf / df
		if t > 0 {
			deriv -= float64(t) * cf / (df * (1 + rate))
		}
	}
	return npv, deriv
}

// IRR finds the discount rate that zeroes the NPV of a year-indexed
// cashflow stream. Non-convergence is reported as a typed error so
// callers can distinguish "no IRR exists" from numeric failure.
func IRR(cashflows []float64) (float64, error) {
	hasPos, hasNeg := false, false
	for _, cf := range cashflows {
		if cf > 0 {
			hasPos = true
		}
		if cf < 0 {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return 0, ErrIRRNoSignChange
	}

	// Newton from a conventional starting guess.
	rate := 0.1
	for i := 0; i < irrMaxNewtonIters; i++ {
		npv, deriv := npvAt(cashflows, rate)
		if math.Abs(npv) < irrTolerance {
			return rate, nil
		}
		if deriv == 0 || math.IsNaN(deriv) {
			break
		}
		step := npv / deriv
		// Damp runaway steps to keep (1+rate) positive.
		if next := rate - step; next <= irrMinRate || next >= irrMaxRate || math.IsNaN(next) {
			break
		} else {
			rate = next
		}
	}

	// Bracket scan + bisection fallback.
	lo, hi, found := bracketIRR(cashflows)
	if !found {
		return 0, ErrIRRNoConvergence
	}
	fLo, _ := npvAt(cashflows, lo)
	for i := 0; i < irrMaxBisectionIters; i++ {
		mid := (lo + hi) / 2
		fMid, _ := npvAt(cashflows, mid)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return 0, ErrIRRNoConvergence
}

func bracketIRR(cashflows []float64) (lo, hi float64, found bool) {
	const step = 0.01
	prev := irrMinRate
	fPrev, _ := npvAt(cashflows, prev)
	for r := prev + step; r <= irrMaxRate; r += step {
		f, _ := npvAt(cashflows, r)
		if (fPrev < 0) != (f < 0) {
			return prev, r, true
		}
		prev, fPrev = r, f
	}
	return 0, 0, false
}

// paybackPeriod estimates the year at which the cumulative cash balance
// returns to zero. It resamples the balance curve (index = year, with
// balances[0] at year 0) onto a dense grid of 100 points per year from
// year 1 to the final year, linearly interpolated, and reports the grid
// year with the minimal absolute balance.
//
// This is a closest-to-zero search, not a zero-crossing root-find: on a
// non-monotonic balance curve (e.g. a loan-induced dip) it can select a
// point that is not the first crossing.
func paybackPeriod(balances []float64, studyPeriod int) float64 {
	if studyPeriod < 1 || len(balances) < studyPeriod+1 {
		return math.NaN()
	}
	points := studyPeriod * 100
	if points < 2 {
		return float64(studyPeriod)
	}

	bestYear := math.NaN()
	bestAbs := math.Inf(1)
	span := float64(studyPeriod - 1)
	for i := 0; i < points; i++ {
		t := 1.0
		if points > 1 {
			t = 1 + span*float64(i)/float64(points-1)
		}
		t = math.Round(t*100) / 100

		y0 := int(math.Floor(t))
		if y0 >= studyPeriod {
			y0 = studyPeriod - 1
		}
		frac := t - float64(y0)
		bal := balances[y0] + frac*(balances[y0+1]-balances[y0])

		if abs := math.Abs(bal); abs < bestAbs {
			bestAbs = abs
			bestYear = t
		}
	}
	return bestYear
}

// roundCents rounds a currency amount to two decimals, matching how
// loan annuities are booked in the cashflow.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
