package finance

import (
	"math"

	"github.com/rshade/herdcarbon/internal/safemath"
)

const (
	irrStepCount     = 1000
	irrTolerance     = 1e-9
	irrMaxIterations = 200
)

// NPV discounts cashflows at rate. cashflows[0] falls at time zero.
func NPV(rate float64, cashflows []float64) float64 {
	var v float64
	for t, cf := range cashflows {
		v += cf / math.Pow(1+rate, float64(t))
	}
	return v
}

// LevelCashflows is an initial outlay followed by years of equal inflows.
func LevelCashflows(investment, annual float64, years int) []float64 {
	cf := make([]float64, 0, years+1)
	cf = append(cf, -investment)
	for range years {
		cf = append(cf, annual)
	}
	return cf
}

// IRRBruteForce scans rates from 0 to 100% in 0.1% steps and returns the
// highest rate reached before NPV first turns negative. It returns 0 when NPV
// is already negative at 0%.
func IRRBruteForce(cashflows []float64) float64 {
	best := 0.0
	for i := 0; i <= irrStepCount; i++ {
		rate := float64(i) / irrStepCount
		if NPV(rate, cashflows) < 0 {
			break
		}
		best = rate
	}
	return best
}

// IRR finds the rate in [0, 1] where NPV crosses zero by bisection. Like
// IRRBruteForce it returns 0 when NPV is negative at 0% and 1 when NPV is
// still non-negative at 100%.
func IRR(cashflows []float64) float64 {
	lo, hi := 0.0, 1.0
	if v := NPV(lo, cashflows); v < 0 || !safemath.IsFinite(v) {
		return 0
	}
	if NPV(hi, cashflows) >= 0 {
		return hi
	}
	for range irrMaxIterations {
		mid := (lo + hi) / 2
		if NPV(mid, cashflows) >= 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < irrTolerance {
			break
		}
	}
	return lo
}
