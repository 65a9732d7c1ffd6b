// Package efficiency computes Lifetime Methane Efficiency (litres of milk per
// kg CO2e of lifetime enteric methane), Nitrogen Use Efficiency, and the
// combined LME+NUE sustainability score.
package efficiency

import (
	"math"

	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// LME interpretation texts.
const (
	LMEExcellent    = "Excellent efficiency"
	LMEGood         = "Good efficiency"
	LMEAverage      = "Average efficiency"
	LMEBelowAverage = "Below average"
	LMEPoor         = "Poor efficiency"
)

// LMEResult is the lifetime methane efficiency of an average cow.
type LMEResult struct {
	LME                float64 `json:"lme"`
	LifetimeProduction float64 `json:"lifetimeProduction"`
	LifetimeEmissions  float64 `json:"lifetimeEmissions"`
	DailyEnteric       float64 `json:"dailyEnteric"`
	ProductiveDays     float64 `json:"productiveDays"`
	NonProductiveDays  float64 `json:"nonProductiveDays"`
	SystemFactor       float64 `json:"systemFactor"`
	Interpretation     string  `json:"interpretation"`
	// OriginalIntensity is the annual emissions intensity, kg CO2e/L, of the
	// baseline breakdown for comparison.
	OriginalIntensity float64 `json:"originalIntensity"`
}

// InterpretLME maps an LME score to its tier. Thresholds are strict.
func InterpretLME(lme float64) string {
	switch {
	case lme > factors.LMEExcellent:
		return LMEExcellent
	case lme > factors.LMEGood:
		return LMEGood
	case lme > factors.LMEAverage:
		return LMEAverage
	case lme > factors.LMEBelowAverage:
		return LMEBelowAverage
	default:
		return LMEPoor
	}
}

// LME computes lifetime methane efficiency for p. baseline is the emissions
// breakdown already computed for the same snapshot.
func LME(p farm.Parameters, baseline emissions.Breakdown) LMEResult {
	lifetimeProduction := p.MilkYield * p.AvgLactations * factors.PersistenceFactor

	dailyYield := safemath.SafeDivide(p.MilkYield, factors.DaysPerLactation, 0)
	dmi := dailyYield*factors.DMIYieldFactor + factors.BaseDMI
	fqAdj := factors.FeedQualityBase - p.FeedQuality*factors.FeedQualityFactor
	dailyEnteric := (factors.MethaneBase + dmi*factors.MethaneDMIFactor) * fqAdj

	productiveDays := p.AvgLactations * factors.DaysPerLactation
	totalDays := p.AgeFirstCalving*factors.DaysPerMonth + p.AvgLactations*p.CalvingInterval
	nonProductiveDays := totalDays - productiveDays
	if !(nonProductiveDays > 0) {
		nonProductiveDays = 0
	}

	lifetimeEmissions := dailyEnteric*productiveDays +
		dailyEnteric*factors.NonProductiveFactor*nonProductiveDays

	systemFactor := factors.SystemFactor(p.SystemType)
	adjusted := safemath.SafeDivide(lifetimeProduction, lifetimeEmissions, 0) * systemFactor

	return LMEResult{
		LME:                safemath.EnsurePositive(adjusted, 0),
		LifetimeProduction: math.Round(safemath.EnsurePositive(lifetimeProduction, 0)),
		LifetimeEmissions:  math.Round(safemath.EnsurePositive(lifetimeEmissions, 0)),
		DailyEnteric:       safemath.EnsurePositive(dailyEnteric, 0),
		ProductiveDays:     safemath.EnsurePositive(productiveDays, 0),
		NonProductiveDays:  nonProductiveDays,
		SystemFactor:       systemFactor,
		Interpretation:     InterpretLME(adjusted),
		OriginalIntensity:  emissions.Intensity(baseline, p.MilkYield),
	}
}
