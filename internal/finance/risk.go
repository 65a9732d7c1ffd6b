// Package finance maps emissions intensity and loan size to a risk grade
// and interest rate, amortizes loans, and assembles green financing packages
// for a reduction pathway.
package finance

// Risk is a coarse loan risk grade.
type Risk string

// Risk grades in increasing severity.
const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Intensity bands and loan-size bumps, kg CO2e/L and £.
const (
	lowIntensityBelow   = 1.0
	mediumIntensityUpTo = 1.5
	oneLevelBumpLoan    = 1_500_000.0
	twoLevelBumpLoan    = 4_000_000.0
	smallLoanBelow      = 1_000_000.0
	mediumLoanUpTo      = 5_000_000.0
)

//nolint:gochecknoglobals // Ordered severity lookup.
var riskOrder = []Risk{RiskLow, RiskMedium, RiskHigh}

func (r Risk) level() int {
	for i, v := range riskOrder {
		if v == r {
			return i
		}
	}
	return len(riskOrder) - 1
}

// RiskScore grades a loan from emissions intensity, then bumps the grade
// one level for loans of £1.5m or more and two levels from £4m, capped at
// High. A NaN intensity grades High.
func RiskScore(intensity, loanAmount float64) Risk {
	var base Risk
	switch {
	case intensity < lowIntensityBelow:
		base = RiskLow
	case intensity <= mediumIntensityUpTo:
		base = RiskMedium
	default:
		base = RiskHigh
	}

	bump := 0
	switch {
	case loanAmount >= twoLevelBumpLoan:
		bump = 2
	case loanAmount >= oneLevelBumpLoan:
		bump = 1
	}

	return riskOrder[min(len(riskOrder)-1, base.level()+bump)]
}

// InterestRate looks up the annual rate for a risk grade and loan size.
// Loans under £1m are small, up to £5m medium, larger ones large. Unknown
// grades are priced as High.
func InterestRate(risk Risk, loanAmount float64) float64 {
	rates := map[Risk][3]float64{
		RiskLow:    {0.045, 0.040, 0.035},
		RiskMedium: {0.050, 0.045, 0.040},
		RiskHigh:   {0.055, 0.050, 0.045},
	}

	row, ok := rates[risk]
	if !ok {
		row = rates[RiskHigh]
	}
	switch {
	case loanAmount < smallLoanBelow:
		return row[0]
	case loanAmount <= mediumLoanUpTo:
		return row[1]
	default:
		return row[2]
	}
}
