// Package pathway measures a farm against its theoretical minimum (the
// biological emissions floor), ranks the reduction measures that close the
// gap, and projects the resulting timeline, glide path and financing needs.
//
// Farm-level emissions in this package are kg CO2e/year unless a field says
// otherwise.
package pathway

import (
	"math"

	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// Tier categories for distance from the floor.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierAverage   = "Average"
	TierPoor      = "Poor"
)

// Floor is a per-cow biological minimum in kg CO2e/cow/year. The zero value,
// and any non-positive value, resolves to factors.TheoreticalMinimumPerCow.
type Floor float64

// DefaultFloor is the standard 2000 kg per cow floor.
const DefaultFloor = Floor(factors.TheoreticalMinimumPerCow)

// PerCow returns the effective per-cow floor.
func (f Floor) PerCow() float64 {
	v := float64(f)
	if !(v > 0) || math.IsInf(v, 0) {
		return factors.TheoreticalMinimumPerCow
	}
	return v
}

// Minimum returns the whole-herd floor. It is linear in herd size and zero
// for an empty herd.
func (f Floor) Minimum(herdSize int) float64 {
	if herdSize <= 0 {
		return 0
	}
	return float64(herdSize) * f.PerCow()
}

// PercentageAbove returns how far current is above the floor, in percent.
// An empty herd reports 0.
func (f Floor) PercentageAbove(current float64, herdSize int) float64 {
	tm := f.Minimum(herdSize)
	if tm == 0 {
		return 0
	}
	return safemath.SafeDivide(current-tm, tm, 0) * 100
}

// Gap returns the reduction needed to reach the floor, never negative.
func (f Floor) Gap(current float64, herdSize int) float64 {
	gap := current - f.Minimum(herdSize)
	if !(gap > 0) {
		return 0
	}
	return gap
}

// TheoreticalMinimum returns herdSize × perCow, with perCow <= 0 meaning
// the default floor.
func TheoreticalMinimum(herdSize int, perCow float64) float64 {
	return Floor(perCow).Minimum(herdSize)
}

// PercentageAboveTM compares current farm emissions with the default floor.
func PercentageAboveTM(current float64, herdSize int) float64 {
	return DefaultFloor.PercentageAbove(current, herdSize)
}

// GapToTM is max(0, current − floor) against the default floor.
func GapToTM(current float64, herdSize int) float64 {
	return DefaultFloor.Gap(current, herdSize)
}

// Interpretation is a tier with a short description.
type Interpretation struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Interpret maps a percentage above the floor to a tier. Bounds are
// inclusive.
func Interpret(pct float64) Interpretation {
	switch {
	case pct <= factors.TMExcellent:
		return Interpretation{TierExcellent, "Near biological minimum - outstanding efficiency"}
	case pct <= factors.TMGood:
		return Interpretation{TierGood, "Well-optimized operations"}
	case pct <= factors.TMAverage:
		return Interpretation{TierAverage, "Significant reduction opportunities exist"}
	default:
		return Interpretation{TierPoor, "Major improvements needed"}
	}
}

// ReferenceComparison sets a farm's per-cow emissions against one regional
// benchmark.
type ReferenceComparison struct {
	Name string `json:"name"`
	// PerCow is the benchmark, kg CO2e/cow/year.
	PerCow float64 `json:"perCow"`
	// Difference is the farm per-cow value minus the benchmark.
	Difference float64 `json:"difference"`
	PercentOf  float64 `json:"percentOf"`
}

// FloorAnalysis summarises a farm's distance from its floor.
type FloorAnalysis struct {
	CurrentEmissions   float64               `json:"currentEmissions"`
	TheoreticalMinimum float64               `json:"theoreticalMinimum"`
	PerCowFloor        float64               `json:"perCowFloor"`
	PercentageAbove    float64               `json:"percentageAbove"`
	Gap                float64               `json:"gap"`
	Interpretation     Interpretation        `json:"interpretation"`
	References         []ReferenceComparison `json:"references"`
}

// CurrentEmissions returns whole-farm emissions in kg CO2e/year.
func CurrentEmissions(e emissions.Breakdown, herdSize int) float64 {
	return emissions.FarmEmissions(e, herdSize) * factors.KgPerTonne
}

// Analyze compares the farm's current emissions with the floor and the
// regional benchmarks.
func (f Floor) Analyze(p farm.Parameters, e emissions.Breakdown) FloorAnalysis {
	current := CurrentEmissions(e, p.HerdSize)
	pct := f.PercentageAbove(current, p.HerdSize)

	refs := factors.References()
	comparisons := make([]ReferenceComparison, 0, len(refs))
	for _, r := range refs {
		comparisons = append(comparisons, ReferenceComparison{
			Name:       r.Name,
			PerCow:     r.PerCow,
			Difference: e.Total - r.PerCow,
			PercentOf:  safemath.SafeDivide(e.Total, r.PerCow, 0) * 100,
		})
	}

	return FloorAnalysis{
		CurrentEmissions:   current,
		TheoreticalMinimum: f.Minimum(p.HerdSize),
		PerCowFloor:        f.PerCow(),
		PercentageAbove:    pct,
		Gap:                f.Gap(current, p.HerdSize),
		Interpretation:     Interpret(pct),
		References:         comparisons,
	}
}

// Analyze runs Floor.Analyze against the default floor.
func Analyze(p farm.Parameters, e emissions.Breakdown) FloorAnalysis {
	return DefaultFloor.Analyze(p, e)
}

// Opportunities is the quick estimate of the three headline measures.
type Opportunities struct {
	// FeedQualityPoints is the number of quality points up to 9/10.
	FeedQualityPoints float64 `json:"feedQualityPoints"`
	FeedQuality       float64 `json:"feedQuality"`
	Inhibitor         float64 `json:"inhibitor"`
	Digester          float64 `json:"digester"`
	TotalPotential    float64 `json:"totalPotential"`
	CanReachTM        bool    `json:"canReachTM"`
}

// Opportunities estimates the reduction available from feed quality,
// methane inhibitors and an anaerobic digester. A farm already at or below
// the floor reports nothing to do and CanReachTM true.
func (f Floor) Opportunities(p farm.Parameters, current float64) Opportunities {
	gap := current - f.Minimum(p.HerdSize)
	if !(gap > 0) {
		return Opportunities{CanReachTM: true}
	}

	var o Opportunities
	if p.FeedQuality < targetFeedQuality {
		o.FeedQualityPoints = targetFeedQuality - p.FeedQuality
		o.FeedQuality = current * potentialFeedQuality * o.FeedQualityPoints
	}
	if !p.MethaneInhibitor {
		o.Inhibitor = current * potentialInhibitor
	}
	if p.ManureSystem != farm.ManureAnaerobicDigester {
		o.Digester = current * potentialDigester
	}
	o.TotalPotential = o.FeedQuality + o.Inhibitor + o.Digester
	o.CanReachTM = o.TotalPotential >= gap
	return o
}

// ReductionOpportunities runs Floor.Opportunities against the default floor.
func ReductionOpportunities(p farm.Parameters, current float64) Opportunities {
	return DefaultFloor.Opportunities(p, current)
}
