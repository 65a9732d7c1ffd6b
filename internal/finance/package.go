package finance

import (
	"sort"

	"github.com/rshade/herdcarbon/internal/pathway"
	"github.com/rshade/herdcarbon/internal/safemath"
)

const (
	// carbonValuePerKg is £25 per tonne CO2e.
	carbonValuePerKg = 0.025

	// PackageDiscountRate and PackageHorizonYears value the package.
	PackageDiscountRate = 0.05
	PackageHorizonYears = 10
)

// Item is one measure matched to a financing product.
type Item struct {
	MeasureID     string  `json:"measureId"`
	MeasureName   string  `json:"measureName"`
	Option        Option  `json:"option"`
	Amount        float64 `json:"amount"`
	EffectiveRate float64 `json:"effectiveRate"`
	// MonthlyPayment and TotalCost are zero for grants.
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalCost      float64 `json:"totalCost"`
	// CarbonBenefit is kg CO2e/year attributable to the financed share.
	CarbonBenefit     float64 `json:"carbonBenefit"`
	AnnualCarbonValue float64 `json:"annualCarbonValue"`
}

// Package is the green financing package for a reduction pathway.
type Package struct {
	Items                   []Item  `json:"items"`
	TotalInvestment         float64 `json:"totalInvestment"`
	TotalFinanced           float64 `json:"totalFinanced"`
	WeightedRate            float64 `json:"weightedRate"`
	MonthlyPayment          float64 `json:"monthlyPayment"`
	TotalFinancingCost      float64 `json:"totalFinancingCost"`
	TotalCarbonBenefit      float64 `json:"totalCarbonBenefit"`
	AnnualCarbonValue       float64 `json:"annualCarbonValue"`
	PaybackMonths           float64 `json:"paybackMonths"`
	NPV                     float64 `json:"npv"`
	IRR                     float64 `json:"irr"`
	CarbonCostEffectiveness float64 `json:"carbonCostEffectiveness"`
	CreditScore             int     `json:"creditScore"`
	ExistingDebt            float64 `json:"existingDebt"`
	// Eligibility is set by WithEligibility when farm revenue is known.
	Eligibility *EligibilityResult `json:"eligibility,omitempty"`
}

func paymentFor(amount, rate float64, years int) (monthly, total float64) {
	if rate <= 0 || years <= 0 {
		return 0, 0
	}
	monthly = MonthlyRepayment(amount, rate, years)
	return monthly, TotalRepaid(monthly, years)
}

// CalculateFinancingPackage matches each pathway measure, best ROI first, to
// a product and finances it until the pathway cost is covered. creditScore
// <= 0 means DefaultCreditScore.
func CalculateFinancingPackage(pw pathway.Pathway, creditScore int, existingDebt float64) Package {
	if creditScore <= 0 {
		creditScore = DefaultCreditScore
	}

	measures := append([]pathway.Measure(nil), pw.Measures...)
	sort.SliceStable(measures, func(i, j int) bool {
		return measures[i].ROI > measures[j].ROI
	})

	pkg := Package{
		TotalInvestment: pw.TotalCost,
		CreditScore:     creditScore,
		ExistingDebt:    existingDebt,
	}

	remaining := pw.TotalCost
	var weighted float64
	for _, m := range measures {
		if remaining <= 0 {
			break
		}
		opt := MatchOption(m)
		amount := min(m.Cost, opt.MaxAmount, remaining)
		rate := opt.EffectiveRate()
		monthly, total := paymentFor(amount, rate, opt.TermYears)
		benefit := m.PotentialReduction * safemath.SafeDivide(amount, m.Cost, 0)

		pkg.Items = append(pkg.Items, Item{
			MeasureID:         m.ID,
			MeasureName:       m.Name,
			Option:            opt,
			Amount:            amount,
			EffectiveRate:     rate,
			MonthlyPayment:    monthly,
			TotalCost:         total,
			CarbonBenefit:     benefit,
			AnnualCarbonValue: benefit * carbonValuePerKg,
		})
		pkg.TotalFinanced += amount
		pkg.MonthlyPayment += monthly
		pkg.TotalFinancingCost += total
		pkg.TotalCarbonBenefit += benefit
		weighted += amount * rate
		remaining -= amount
	}

	pkg.WeightedRate = safemath.SafeDivide(weighted, pkg.TotalFinanced, 0)
	pkg.AnnualCarbonValue = pkg.TotalCarbonBenefit * carbonValuePerKg
	pkg.PaybackMonths = safemath.SafeDivide(pkg.TotalFinancingCost, pkg.AnnualCarbonValue*monthsPerYear, 0)

	flows := LevelCashflows(pkg.TotalInvestment, pkg.AnnualCarbonValue, PackageHorizonYears)
	pkg.NPV = NPV(PackageDiscountRate, flows)
	if pkg.TotalInvestment > 0 {
		pkg.IRR = IRR(flows)
	}
	pkg.CarbonCostEffectiveness = safemath.SafeDivide(pkg.TotalFinancingCost, pkg.TotalCarbonBenefit, 0)
	return pkg
}

// WithEligibility attaches the eligibility assessment for a farm with the
// given annual revenue. The green score is the pathway's reduction as a
// percentage of current emissions.
func (p Package) WithEligibility(revenue float64, pw pathway.Pathway) Package {
	green := safemath.Percentage(pw.TotalReduction, pw.CurrentEmissions, 2)
	e := Eligibility(revenue, p.CreditScore, p.ExistingDebt, green)
	p.Eligibility = &e
	return p
}
