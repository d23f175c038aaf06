package invest

import (
	"errors"
	"math"
)

// ErrXirrNonConvergent is returned when neither Newton-Raphson nor the
// bisection fallback can bracket a root. The caller degrades to the simple
// return rate and reports a warning; the batch keeps going.
var ErrXirrNonConvergent = errors.New("xirr did not converge")

const (
	xirrTolerance = 1e-6
	xirrMaxIter   = 100
	xirrMinRate   = -0.99
	xirrMaxRate   = 10.0
)

// Xirr solves for the annualized rate r such that the net present value of
// the flows is zero: Σ amount / (1+r)^(days/365) = 0. The result is a
// percentage (10.5 means 10.5% per year).
//
// Degenerate input is a defined scenario, not an error: fewer than two
// nonzero flows, or flows all of one sign, yield exactly 0.00%.
func Xirr(flows []CashFlow) (Percent, error) {
	amounts, years := flowSeries(flows)
	if len(amounts) < 2 {
		return 0, nil
	}
	hasNeg, hasPos := false, false
	for _, a := range amounts {
		if a < 0 {
			hasNeg = true
		}
		if a > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return 0, nil
	}

	if rate, ok := newtonXirr(amounts, years); ok {
		return Percent(rate * 100), nil
	}
	rate, ok := bisectXirr(amounts, years)
	if !ok {
		return 0, ErrXirrNonConvergent
	}
	return Percent(rate * 100), nil
}

// flowSeries converts merged flows into parallel amount and year-fraction
// slices, dropping zero amounts. Year fractions count calendar days from the
// earliest flow divided by 365.
func flowSeries(flows []CashFlow) (amounts, years []float64) {
	merged := MergeFlows(flows)
	var filtered []CashFlow
	for _, f := range merged {
		if !f.Amount.IsZero() {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}
	first := filtered[0].Date
	for _, f := range filtered {
		amounts = append(amounts, f.Amount.AsFloat())
		years = append(years, float64(f.Date.DaysSince(first))/365.0)
	}
	return amounts, years
}

// npv computes the net present value of the series at a given rate.
func npv(rate float64, amounts, years []float64) float64 {
	sum := 0.0
	for i, a := range amounts {
		sum += a / math.Pow(1+rate, years[i])
	}
	return sum
}

// newtonXirr runs Newton-Raphson from a 10% initial guess. It reports
// failure when the derivative vanishes or the iteration limit is reached.
func newtonXirr(amounts, years []float64) (float64, bool) {
	rate := 0.1
	for range xirrMaxIter {
		value := npv(rate, amounts, years)
		if math.Abs(value) < xirrTolerance {
			return rate, true
		}
		deriv := 0.0
		for i, a := range amounts {
			y := years[i]
			if y == 0 {
				continue
			}
			deriv -= y * a / math.Pow(1+rate, y+1)
		}
		if math.Abs(deriv) < 1e-10 {
			return 0, false
		}
		next := rate - value/deriv
		next = math.Max(xirrMinRate, math.Min(next, xirrMaxRate))
		if next == rate {
			// clamped or stalled, Newton cannot make progress
			return 0, false
		}
		rate = next
	}
	return 0, false
}

// bisectXirr is the fallback solver over a bounded rate interval. It reports
// failure when the interval does not bracket a root.
func bisectXirr(amounts, years []float64) (float64, bool) {
	lo, hi := xirrMinRate, xirrMaxRate
	npvLo := npv(lo, amounts, years)
	npvHi := npv(hi, amounts, years)
	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || npvLo*npvHi > 0 {
		return 0, false
	}
	for range 2 * xirrMaxIter {
		mid := (lo + hi) / 2
		npvMid := npv(mid, amounts, years)
		if math.Abs(npvMid) < xirrTolerance || (hi-lo)/2 < xirrTolerance {
			return mid, true
		}
		if npvLo*npvMid < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}
	return (lo + hi) / 2, true
}

// SimpleReturn is the degraded rate used when XIRR cannot converge:
// (end − start − net new investment) / basis, as a percentage. A
// non-positive basis yields 0.
func SimpleReturn(netGain, basis Money) Percent {
	if !basis.IsPositive() {
		return 0
	}
	return Percent(netGain.AsFloat() / basis.AsFloat() * 100)
}
