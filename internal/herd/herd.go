// Package herd computes herd-management KPIs and compares them with the
// performance targets.
package herd

import (
	"math"

	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// Metrics holds the herd KPIs. Percentages are 0–100.
type Metrics struct {
	Emissions                float64 `json:"emissions"`
	FeedEfficiency           float64 `json:"feedEfficiency"`
	ProteinEfficiency        float64 `json:"proteinEfficiency"`
	NitrogenEfficiency       float64 `json:"nitrogenEfficiency"`
	CostPerLitre             float64 `json:"costPerLitre"`
	OverallHerdEffectiveness float64 `json:"overallHerdEffectiveness"`
	CalvingUnder25Pct        float64 `json:"calvingUnder25Pct"`
	HitCalvingIntervalPct    float64 `json:"hitCalvingIntervalPct"`
	RetentionRate            float64 `json:"retentionRate"`
	ReplacementRate          float64 `json:"replacementRate"`
}

// Calculate derives the KPIs for p. intensity and costPerLitre come from the
// emissions and economics results for the same snapshot.
func Calculate(p farm.Parameters, intensity, costPerLitre float64) Metrics {
	adjFeed := factors.AdjustedFeed(p)
	adjN := factors.AdjustedNitrogen(p)

	replacement := ReplacementRate(p.AvgLactations)
	retention := 100 - replacement
	under25 := CalvingUnder25Pct(p.AgeFirstCalving)
	hitCI := HitCalvingIntervalPct(p.CalvingInterval)

	proteinEff := factors.ProteinEfficiencyBase -
		0.1*(adjFeed-factors.ReferenceConcentrateFeed) +
		0.05*(factors.ReferenceCrudeProtein-p.CrudeProtein)

	return Metrics{
		Emissions:                intensity,
		FeedEfficiency:           safemath.SafeDivide(p.MilkYield, adjFeed*factors.DaysPerYear, 0),
		ProteinEfficiency:        proteinEff,
		NitrogenEfficiency:       NitrogenEfficiency(adjN, p.GrazingMonths, p.MilkYield),
		CostPerLitre:             costPerLitre,
		OverallHerdEffectiveness: OverallEffectiveness(under25, hitCI, retention),
		CalvingUnder25Pct:        under25,
		HitCalvingIntervalPct:    hitCI,
		RetentionRate:            retention,
		ReplacementRate:          replacement,
	}
}

// NitrogenEfficiency is bounded to the 5–50% range seen on dairy farms.
func NitrogenEfficiency(adjustedNitrogen, grazingMonths, milkYield float64) float64 {
	eff := factors.NitrogenEfficiencyBase -
		0.02*(adjustedNitrogen-factors.ReferenceNitrogenRate) +
		0.1*safemath.SafeDivide(grazingMonths, factors.GrazingMonthsPerYear, 0) +
		0.001*(milkYield-factors.ReferenceMilkYield)
	return safemath.Clamp(eff, factors.NitrogenEfficiencyFloor, factors.NitrogenEfficiencyCeiling)
}

// ReplacementRate is the annual share of the herd replaced, 100 when
// lactations are unknown.
func ReplacementRate(avgLactations float64) float64 {
	return safemath.SafeDivide(100, avgLactations, 100)
}

// CalvingUnder25Pct drops 10 points per month of first-calving age over 25.
func CalvingUnder25Pct(ageFirstCalving float64) float64 {
	if ageFirstCalving <= factors.AgeFirstCalvingBenchmark {
		return 100
	}
	return safemath.Clamp(100-(ageFirstCalving-factors.AgeFirstCalvingBenchmark)*10, 0, 100)
}

// HitCalvingIntervalPct drops half a point per day over the interval target.
func HitCalvingIntervalPct(calvingInterval float64) float64 {
	if calvingInterval <= factors.CalvingIntervalTarget {
		return 100
	}
	return safemath.Clamp(100-(calvingInterval-factors.CalvingIntervalTarget)*0.5, 0, 100)
}

// OverallEffectiveness multiplies the three fertility percentages.
func OverallEffectiveness(calvingUnder25, hitCI, retention float64) float64 {
	return safemath.Clamp(safemath.SafeDivide(calvingUnder25*hitCI*retention, 10000, 0), 0, 100)
}

// Targets are the KPI goals used by Assess.
type Targets struct {
	Emissions          float64 `json:"emissions"`
	CostPerLitre       float64 `json:"costPerLitre"`
	ProteinEfficiency  float64 `json:"proteinEfficiency"`
	NitrogenEfficiency float64 `json:"nitrogenEfficiency"`
	CalvingInterval    float64 `json:"calvingInterval"`
	AgeFirstCalving    float64 `json:"ageFirstCalving"`
	HerdEffectiveness  float64 `json:"herdEffectiveness"`
	LME                float64 `json:"lme"`
	FeedEfficiency     float64 `json:"feedEfficiency"`
	RetentionRate      float64 `json:"retentionRate"`
}

// DefaultTargets returns the standard performance targets.
func DefaultTargets() Targets {
	return Targets{
		Emissions:          factors.EmissionsTarget,
		CostPerLitre:       factors.CostTarget,
		ProteinEfficiency:  factors.ProteinEfficiencyTarget,
		NitrogenEfficiency: factors.NitrogenEfficiencyTarget,
		CalvingInterval:    factors.CalvingIntervalTarget,
		AgeFirstCalving:    factors.AgeFirstCalvingTarget,
		HerdEffectiveness:  factors.HerdEffectivenessTarget,
		LME:                factors.LMETarget,
		FeedEfficiency:     factors.FeedEfficiencyTarget,
		RetentionRate:      factors.RetentionRateTarget,
	}
}

// Assessment compares one KPI with its target.
type Assessment struct {
	Metric        string  `json:"metric"`
	Value         float64 `json:"value"`
	Target        float64 `json:"target"`
	LowerIsBetter bool    `json:"lowerIsBetter"`
	OnTarget      bool    `json:"onTarget"`
}

// Assess flags each KPI on or off target. Non-finite values are off target.
func Assess(m Metrics, t Targets) []Assessment {
	rows := []Assessment{
		{Metric: "Emissions intensity", Value: m.Emissions, Target: t.Emissions, LowerIsBetter: true},
		{Metric: "Cost per litre", Value: m.CostPerLitre, Target: t.CostPerLitre, LowerIsBetter: true},
		{Metric: "Feed efficiency", Value: m.FeedEfficiency, Target: t.FeedEfficiency},
		{Metric: "Protein efficiency", Value: m.ProteinEfficiency, Target: t.ProteinEfficiency},
		{Metric: "Nitrogen efficiency", Value: m.NitrogenEfficiency, Target: t.NitrogenEfficiency},
		{Metric: "Overall herd effectiveness", Value: m.OverallHerdEffectiveness, Target: t.HerdEffectiveness},
		{Metric: "Retention rate", Value: m.RetentionRate, Target: t.RetentionRate},
	}
	for i := range rows {
		r := &rows[i]
		switch {
		case math.IsNaN(r.Value) || math.IsInf(r.Value, 0):
			r.OnTarget = false
		case r.LowerIsBetter:
			r.OnTarget = r.Value <= r.Target
		default:
			r.OnTarget = r.Value >= r.Target
		}
	}
	return rows
}
