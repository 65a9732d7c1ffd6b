package finance

import (
	"math"

	"github.com/rshade/herdcarbon/internal/safemath"
)

const (
	// DefaultCreditScore is assumed when no credit score is supplied.
	DefaultCreditScore = 700

	maxDebtServiceShare     = 0.30
	currentDebtServiceShare = 0.10

	loanCreditMin  = 650
	otherCreditMin = 700

	eligibilityRate  = 0.04
	eligibilityYears = 8
)

// EligibilityResult summarizes how much green finance a farm can take on.
type EligibilityResult struct {
	MaxDebtService     float64      `json:"maxDebtService"`
	CurrentDebtService float64      `json:"currentDebtService"`
	AvailableCapacity  float64      `json:"availableCapacity"`
	DebtServiceRatio   float64      `json:"debtServiceRatio"`
	GreenBonus         float64      `json:"greenBonus"`
	EligibleTypes      []OptionType `json:"eligibleTypes"`
	EligibleOptions    []Option     `json:"eligibleOptions"`
	MaxLoan            float64      `json:"maxLoan"`
}

// Eligible reports whether t is among the eligible product types.
func (r EligibilityResult) Eligible(t OptionType) bool {
	for _, e := range r.EligibleTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Eligibility caps debt service at 30% of revenue, assumes existing debt
// costs 10% a year to service, and sizes the largest 8-year loan at 4% that
// fits in the remaining capacity, never below zero. greenScore above 20 earns
// a 2-point rate bonus, above 10 a 1-point bonus.
func Eligibility(revenue float64, creditScore int, existingDebt, greenScore float64) EligibilityResult {
	maxService := revenue * maxDebtServiceShare
	current := existingDebt * currentDebtServiceShare
	available := maxService - current

	var bonus float64
	switch {
	case greenScore > 20:
		bonus = 0.02
	case greenScore > 10:
		bonus = 0.01
	}

	types := []OptionType{TypeGrant}
	if creditScore >= loanCreditMin {
		types = append(types, TypeLoan)
	}
	if creditScore >= otherCreditMin {
		types = append(types, TypeSubsidy, TypeCarbonCredit, TypeBlended)
	}

	res := EligibilityResult{EligibleTypes: types}
	for _, o := range Catalog() {
		if res.Eligible(o.Type) {
			res.EligibleOptions = append(res.EligibleOptions, o)
		}
	}

	r := eligibilityRate / monthsPerYear
	n := float64(eligibilityYears * monthsPerYear)
	growth := math.Pow(1+r, n)
	maxLoan := math.Max(0, available/monthsPerYear*safemath.SafeDivide(growth-1, r*growth, 0))

	res.MaxDebtService = maxService
	res.CurrentDebtService = current
	res.AvailableCapacity = available
	res.DebtServiceRatio = safemath.SafeDivide(current, revenue, 0)
	res.GreenBonus = bonus
	res.MaxLoan = maxLoan
	return res
}
