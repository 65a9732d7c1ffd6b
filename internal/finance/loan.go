package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rshade/herdcarbon/internal/safemath"
)

const monthsPerYear = 12

// MonthlyRepayment is the fixed payment that amortizes principal over years
// at annualRate. A zero rate divides the principal evenly; a non-positive
// term has no payments.
func MonthlyRepayment(principal, annualRate float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	n := float64(years * monthsPerYear)
	r := annualRate / monthsPerYear
	if r == 0 {
		return principal / n
	}
	payment := safemath.SafeDivide(principal*r, 1-math.Pow(1+r, -n), 0)
	if !safemath.IsFinite(payment) {
		return 0
	}
	return payment
}

// TotalRepaid is the sum of all monthly payments over the term.
func TotalRepaid(monthly float64, years int) float64 {
	return monthly * float64(years) * monthsPerYear
}

// Installment is one month of an amortization schedule, rounded to pence.
type Installment struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// AmortizationSchedule lists every monthly installment. Amounts are rounded
// to pence each month and the final payment absorbs the rounding residue so
// the balance closes at exactly zero.
func AmortizationSchedule(principal, annualRate float64, years int) []Installment {
	if years <= 0 || !(principal > 0) || !safemath.IsFinite(principal) {
		return nil
	}

	n := years * monthsPerYear
	payment := decimal.NewFromFloat(MonthlyRepayment(principal, annualRate, years)).Round(2)
	rate := decimal.NewFromFloat(annualRate).Div(decimal.NewFromInt(monthsPerYear))
	balance := decimal.NewFromFloat(principal).Round(2)

	schedule := make([]Installment, 0, n)
	for m := 1; m <= n; m++ {
		interest := balance.Mul(rate).Round(2)
		pay := payment
		if m == n || pay.Sub(interest).GreaterThan(balance) {
			pay = balance.Add(interest)
		}
		princ := pay.Sub(interest)
		balance = balance.Sub(princ)

		schedule = append(schedule, Installment{
			Month:     m,
			Payment:   pay,
			Interest:  interest,
			Principal: princ,
			Balance:   balance,
		})
		if balance.IsZero() {
			break
		}
	}
	return schedule
}
