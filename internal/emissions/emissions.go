// Package emissions converts farm parameters into a per-cow greenhouse gas
// breakdown, the offsetting sequestration, and the farm-level aggregates
// derived from both.
//
// Every function is pure and never fails: degenerate input such as a zero
// yield or NaN field degrades to finite, non-negative values.
package emissions

import (
	"math"

	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// Breakdown is the per-cow annual emissions split, kg CO2e/cow/year.
// Total is always the sum of the five components and each component is
// non-negative.
type Breakdown struct {
	Enteric       float64 `json:"enteric"`
	Manure        float64 `json:"manure"`
	Feed          float64 `json:"feed"`
	Deforestation float64 `json:"deforestation"`
	Nitrogen      float64 `json:"nitrogen"`
	Total         float64 `json:"total"`
}

// PenaltyBreakdown lists each capped performance penalty contribution.
type PenaltyBreakdown struct {
	Yield     float64 `json:"yield"`
	FeedRatio float64 `json:"feedRatio"`
	Footprint float64 `json:"footprint"`
	Nitrogen  float64 `json:"nitrogen"`
	Soya      float64 `json:"soya"`
	Grazing   float64 `json:"grazing"`
	// Total is the capped sum of the contributions above.
	Total float64 `json:"total"`
}

// Multipliers are the herd performance adjustments applied to every
// emission component.
type Multipliers struct {
	// Performance is 1 + the capped penalty, in [1.0, 1.40].
	Performance float64 `json:"performance"`
	// Fertility is the uncapped replacement and calving overhead, >= 1.0.
	Fertility float64 `json:"fertility"`
	// Combined is Performance × Fertility. It is not capped again.
	Combined float64          `json:"combined"`
	Penalty  PenaltyBreakdown `json:"penalty"`
}

// excess returns how far v is above threshold, or 0 when it is not above
// it or is not finite.
func excess(v, threshold float64) float64 {
	if !safemath.IsFinite(v) || v <= threshold {
		return 0
	}
	return v - threshold
}

// shortfall returns how far v is below threshold, or 0.
func shortfall(v, threshold float64) float64 {
	if !safemath.IsFinite(v) || v >= threshold {
		return 0
	}
	return threshold - v
}

func capped(v, limit float64) float64 {
	return safemath.Clamp(v, 0, limit)
}

// PerformancePenalty computes the additive penalty contributions from herd
// KPIs. Each contribution is capped on its own and the total is capped at
// factors.PenaltyTotalCap.
func PerformancePenalty(p farm.Parameters) PenaltyBreakdown {
	adjFeed := factors.AdjustedFeed(p)
	feedRatio := safemath.SafeDivide(adjFeed*factors.DaysPerYear, p.MilkYield, 0)

	var pb PenaltyBreakdown
	pb.Yield = capped(
		safemath.SafeDivide(shortfall(p.MilkYield, factors.PenaltyYieldThreshold), factors.PenaltyYieldThreshold, 0)*
			factors.PenaltyYieldFactor,
		factors.PenaltyYieldCap)
	pb.FeedRatio = capped(
		excess(feedRatio, factors.PenaltyFeedRatioThreshold)*factors.PenaltyFeedRatioFactor,
		factors.PenaltyFeedRatioCap)
	pb.Footprint = capped(
		excess(p.FeedCarbonFootprint, factors.PenaltyFootprintThreshold)*factors.PenaltyFootprintFactor,
		factors.PenaltyFootprintCap)
	pb.Nitrogen = capped(
		excess(p.NitrogenRate, factors.PenaltyNitrogenThreshold)/factors.PenaltyNitrogenThreshold*
			factors.PenaltyNitrogenFactor,
		factors.PenaltyNitrogenCap)
	if !p.DeforestationFree {
		pb.Soya = capped(
			excess(p.SoyaContent, factors.PenaltySoyaThreshold)/100*factors.PenaltySoyaFactor,
			factors.PenaltySoyaCap)
	}
	pb.Grazing = capped(
		shortfall(p.GrazingMonths, factors.PenaltyGrazingThreshold)/factors.PenaltyGrazingThreshold*
			factors.PenaltyGrazingFactor,
		factors.PenaltyGrazingCap)

	pb.Total = capped(
		pb.Yield+pb.FeedRatio+pb.Footprint+pb.Nitrogen+pb.Soya+pb.Grazing,
		factors.PenaltyTotalCap)
	return pb
}

// FertilityMultiplier charges heifer replacement overhead for short herd
// lives and lost productivity for long calving intervals.
func FertilityMultiplier(p farm.Parameters) float64 {
	return 1 +
		shortfall(p.AvgLactations, factors.FertilityLactationTarget)*factors.FertilityLactationFactor +
		excess(p.CalvingInterval, factors.FertilityCalvingTarget)*factors.FertilityCalvingFactor
}

// CalculateMultipliers composes the performance and fertility multipliers.
func CalculateMultipliers(p farm.Parameters) Multipliers {
	pb := PerformancePenalty(p)
	perf := 1 + pb.Total
	fert := FertilityMultiplier(p)
	return Multipliers{
		Performance: perf,
		Fertility:   fert,
		Combined:    perf * fert,
		Penalty:     pb,
	}
}

// Calculate returns the per-cow emissions breakdown for p.
func Calculate(p farm.Parameters) Breakdown {
	return calculateWith(p, CalculateMultipliers(p))
}

func calculateWith(p farm.Parameters, m Multipliers) Breakdown {
	seasonal := factors.SeasonalFactors(p.Season)
	adjFeed := p.ConcentrateFeed * seasonal.Feed
	annualFeed := adjFeed * factors.DaysPerYear
	k := m.Combined

	enteric := (factors.BaseEnteric + adjFeed*factors.FeedMultiplier) * k
	manure := (factors.ManureFactor(p.ManureSystem) - p.GrazingMonths*factors.GrazingReduction) * k
	feed := annualFeed * p.FeedCarbonFootprint * k

	var deforestation float64
	if !p.DeforestationFree {
		soyaKg := annualFeed * safemath.SafeDivide(p.SoyaContent, 100, 0)
		deforestation = soyaKg * factors.DeforestationFactor * k
	}

	nitrogen := p.NitrogenRate * seasonal.Nitrogen * factors.NitrogenMultiplier * k

	b := Breakdown{
		Enteric:       safemath.EnsurePositive(enteric, 0),
		Manure:        safemath.EnsurePositive(manure, 0),
		Feed:          safemath.EnsurePositive(feed, 0),
		Deforestation: safemath.EnsurePositive(deforestation, 0),
		Nitrogen:      safemath.EnsurePositive(nitrogen, 0),
	}
	b.Total = b.Enteric + b.Manure + b.Feed + b.Deforestation + b.Nitrogen
	if math.IsInf(b.Total, 0) {
		b = Breakdown{}
	}
	return b
}
