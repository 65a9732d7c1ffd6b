package scenario

import (
	"fmt"
	"math"

	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// ComparisonRow is one metric side by side.
type ComparisonRow struct {
	Label    string  `json:"label"`
	Unit     string  `json:"unit"`
	Baseline float64 `json:"baseline"`
	Scenario float64 `json:"scenario"`
	Delta    float64 `json:"delta"`
	// PercentChange is relative to the baseline, 0 when the baseline is 0.
	PercentChange float64 `json:"percentChange"`
	LowerIsBetter bool    `json:"lowerIsBetter"`
	Improved      bool    `json:"improved"`
}

func row(label, unit string, baseline, scenario float64, lowerIsBetter bool) ComparisonRow {
	delta := scenario - baseline
	improved := delta > 0
	if lowerIsBetter {
		improved = delta < 0
	}
	return ComparisonRow{
		Label:         label,
		Unit:          unit,
		Baseline:      baseline,
		Scenario:      scenario,
		Delta:         delta,
		PercentChange: safemath.SafeDivide(delta, baseline, 0) * 100,
		LowerIsBetter: lowerIsBetter,
		Improved:      improved,
	}
}

func lme(r *engine.Results) float64 {
	if r.LME == nil {
		return 0
	}
	return r.LME.LME
}

func sequestration(r *engine.Results) float64 {
	if r.Sequestration == nil {
		return 0
	}
	return r.Sequestration.Total
}

// Compare lines up the headline metrics of two evaluations.
func Compare(baseline, scenario *engine.Results) []ComparisonRow {
	return []ComparisonRow{
		row("Gross Emissions", "t CO2e/year", baseline.FarmEmissions, scenario.FarmEmissions, true),
		row("Sequestration", "t CO2e/year", sequestration(baseline), sequestration(scenario), false),
		row("Net Emissions", "t CO2e/year", baseline.NetFarmEmissions, scenario.NetFarmEmissions, true),
		row("Emissions Intensity", "kg CO2e/L", baseline.Intensity, scenario.Intensity, true),
		row("Cost per Litre", "£/L", baseline.Costs.CostPerLitre, scenario.Costs.CostPerLitre, true),
		row("Annual Profit", "£", baseline.Profit, scenario.Profit, false),
		row("Lifetime Methane Efficiency", "L/t CO2e", lme(baseline), lme(scenario), false),
	}
}

// Summary is a one-line description of the net emissions change and, when
// profit rises, the profit gain.
func Summary(rows []ComparisonRow) string {
	var net, profit *ComparisonRow
	for i := range rows {
		switch rows[i].Label {
		case "Net Emissions":
			net = &rows[i]
		case "Annual Profit":
			profit = &rows[i]
		}
	}
	if net == nil {
		return ""
	}

	s := fmt.Sprintf("Net emissions reduced by %.0f%%", math.Abs(net.PercentChange))
	if net.Delta > 0 {
		s = fmt.Sprintf("Net emissions increased by %.0f%%", math.Abs(net.PercentChange))
	}
	if profit != nil && profit.Delta > 0 {
		s += fmt.Sprintf(" while increasing profit by £%.0fk", profit.Delta/1000)
	}
	return s
}

// PracticeCost is the up-front cost of a practice adopted in the scenario.
type PracticeCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Financing is the capital view of moving from baseline to scenario.
type Financing struct {
	// EmissionsReduction is kg CO2e/year.
	EmissionsReduction float64        `json:"emissionsReduction"`
	ReductionPercent   float64        `json:"reductionPercent"`
	Practices          []PracticeCost `json:"practices"`
	TotalInvestment    float64        `json:"totalInvestment"`
	AnnualCarbonValue  float64        `json:"annualCarbonValue"`
	// SimplePayback is years; 0 when there is no carbon value.
	SimplePayback float64 `json:"simplePayback"`
}

// Up-front practice costs in £.
const (
	costInhibitor      = 30_000.0
	costImprovedManure = 50_000.0
	costSolarPerKw     = 1_500.0
	costTreesPerHa     = 2_000.0
	costGrazing        = 10_000.0
	costNitrogen       = 5_000.0

	carbonValuePerKg = 0.025
)

// Finance prices the practices that differ between baseline and
// scenario and values the emissions reduction at £25 per tonne.
func Finance(baseline, scenario *engine.Results) Financing {
	b, s := baseline.Parameters, scenario.Parameters

	var practices []PracticeCost
	if s.MethaneInhibitor && !b.MethaneInhibitor {
		practices = append(practices, PracticeCost{"Methane Inhibitor", costInhibitor})
	}
	if s.ImprovedManure && !b.ImprovedManure {
		practices = append(practices, PracticeCost{"Improved Manure System", costImprovedManure})
	}
	if d := s.RenewableEnergyKw - b.RenewableEnergyKw; d > 0 {
		practices = append(practices, PracticeCost{fmt.Sprintf("Solar Panels (%g kW)", d), d * costSolarPerKw})
	}
	if d := s.TreePlantingHa - b.TreePlantingHa; d > 0 {
		practices = append(practices, PracticeCost{fmt.Sprintf("Tree Planting (%g ha)", d), d * costTreesPerHa})
	}
	if s.GrazingMonths > b.GrazingMonths {
		practices = append(practices, PracticeCost{"Extended Grazing", costGrazing})
	}
	if s.NitrogenRate < b.NitrogenRate {
		practices = append(practices, PracticeCost{"Nitrogen Optimization", costNitrogen})
	}

	var total float64
	for _, pc := range practices {
		total += pc.Cost
	}

	before := baseline.FarmEmissions * factors.KgPerTonne
	reduction := before - scenario.FarmEmissions*factors.KgPerTonne
	value := reduction * carbonValuePerKg

	payback := 0.0
	if value > 0 {
		payback = safemath.SafeDivide(total, value, 0)
	}

	return Financing{
		EmissionsReduction: reduction,
		ReductionPercent:   safemath.SafeDivide(reduction, before, 0) * 100,
		Practices:          practices,
		TotalInvestment:    total,
		AnnualCarbonValue:  value,
		SimplePayback:      payback,
	}
}
