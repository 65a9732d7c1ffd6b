package pathway

import (
	"math"

	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

const (
	// DefaultProjectionYears is the glide path length when none is given.
	DefaultProjectionYears = 10

	annualTechReduction    = 0.02
	sequestrationRampYears = 5.0
)

// ProjectionYear is one year of the net-carbon glide path. Emission and
// sequestration values are t CO2e/year.
type ProjectionYear struct {
	Year               int     `json:"year"`
	Gross              float64 `json:"gross"`
	TheoreticalMinimum float64 `json:"theoreticalMinimum"`
	Sequestration      float64 `json:"sequestration"`
	Net                float64 `json:"net"`
	// Production is thousands of litres per year.
	Production float64 `json:"production"`
	// Intensity is kg CO2e/L.
	Intensity      float64 `json:"intensity"`
	PercentAboveTM float64 `json:"percentAboveTM"`
}

// GlidePath is a projection of gross, sequestered and net emissions.
type GlidePath struct {
	Years           []ProjectionYear `json:"years"`
	CurrentYear     int              `json:"currentYear"`
	TargetYear      int              `json:"targetYear"`
	CanReachNetZero bool             `json:"canReachNetZero"`
	CanReachTM      bool             `json:"canReachTM"`
}

// GlidePath projects emissions forward assuming a 2% annual technology
// improvement and sequestration that ramps to full effect over five years.
// years <= 0 means DefaultProjectionYears.
func (f Floor) GlidePath(
	p farm.Parameters, e emissions.Breakdown, seq emissions.Sequestration, currentYear, years int,
) GlidePath {
	if years <= 0 {
		years = DefaultProjectionYears
	}

	tmTonnes := f.Minimum(p.HerdSize) / factors.KgPerTonne
	gross0 := emissions.FarmEmissions(e, p.HerdSize)
	production := emissions.FarmProduction(p.MilkYield, p.HerdSize)

	gp := GlidePath{
		Years:       make([]ProjectionYear, 0, years),
		CurrentYear: currentYear,
		TargetYear:  currentYear + years - 1,
	}
	for i := range years {
		gross := gross0 * math.Pow(1-annualTechReduction, float64(i))
		s := seq.Total * math.Min(1, float64(i)/sequestrationRampYears)
		gp.Years = append(gp.Years, ProjectionYear{
			Year:               currentYear + i,
			Gross:              gross,
			TheoreticalMinimum: tmTonnes,
			Sequestration:      s,
			Net:                math.Max(0, gross-s),
			Production:         production,
			Intensity:          safemath.SafeDivide(gross, production, 0),
			PercentAboveTM:     safemath.SafeDivide(gross-tmTonnes, tmTonnes, 0) * 100,
		})
	}

	last := gp.Years[len(gp.Years)-1]
	gp.CanReachNetZero = last.Net <= 0
	gp.CanReachTM = last.Gross <= last.TheoreticalMinimum
	return gp
}

// Project runs Floor.GlidePath against the default floor.
func Project(p farm.Parameters, e emissions.Breakdown, seq emissions.Sequestration, currentYear, years int) GlidePath {
	return DefaultFloor.GlidePath(p, e, seq, currentYear, years)
}

// FinancingNeeds is the capital view of a pathway.
type FinancingNeeds struct {
	TotalInvestment float64 `json:"totalInvestment"`
	AnnualSavings   float64 `json:"annualSavings"`
	AnnualPayment   float64 `json:"annualPayment"`
	PaybackYears    float64 `json:"paybackYears"`
	NPV             float64 `json:"npv"`
}

const (
	// DefaultFinancingRate is the annual rate used when none is given.
	DefaultFinancingRate = 0.04

	// savingsPerKg is the carbon credit value, £ per kg CO2e reduced.
	savingsPerKg       = 0.02
	financingTermYears = 10
)

// CalculateFinancingNeeds values the pathway as a 10-year loan repaid from
// carbon savings. rate <= 0 means DefaultFinancingRate.
func CalculateFinancingNeeds(pw Pathway, rate float64) FinancingNeeds {
	if !(rate > 0) {
		rate = DefaultFinancingRate
	}

	investment := pw.TotalCost
	savings := pw.TotalReduction * savingsPerKg

	monthly := rate / 12
	n := float64(financingTermYears * 12)
	growth := math.Pow(1+monthly, n)
	annualPayment := safemath.SafeDivide(investment*monthly*growth, growth-1, 0) * 12

	npv := -investment
	for y := 1; y <= financingTermYears; y++ {
		npv += savings / math.Pow(1+rate, float64(y))
	}

	return FinancingNeeds{
		TotalInvestment: investment,
		AnnualSavings:   savings,
		AnnualPayment:   annualPayment,
		PaybackYears:    safemath.SafeDivide(investment, savings, 0),
		NPV:             npv,
	}
}
