package emissions

import (
	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// Sequestration is the annual offset, t CO2e/year. Total is the sum of the
// seven parts and each part is non-negative.
type Sequestration struct {
	Trees                     float64 `json:"trees"`
	Hedgerows                 float64 `json:"hedgerows"`
	Soil                      float64 `json:"soil"`
	CoverCrops                float64 `json:"coverCrops"`
	Renewable                 float64 `json:"renewable"`
	MethaneInhibitorReduction float64 `json:"methaneInhibitorReduction"`
	ImprovedManureReduction   float64 `json:"improvedManureReduction"`
	Total                     float64 `json:"total"`
}

// CalculateSequestration converts land use and technology adoption into an
// offset. The emissions breakdown for the same snapshot is passed in rather
// than recomputed so the two always describe the same parameters.
func CalculateSequestration(p farm.Parameters, e Breakdown) Sequestration {
	herd := p.Herd()

	s := Sequestration{
		Trees:      safemath.EnsurePositive(p.TreePlantingHa*factors.TreesPerHa, 0),
		Hedgerows:  safemath.EnsurePositive(p.HedgerowKm*factors.HedgerowPerKm, 0),
		Soil:       safemath.EnsurePositive(p.SoilCarbonHa*factors.SoilCarbonPerHa, 0),
		CoverCrops: safemath.EnsurePositive(p.CoverCropsHa*factors.CoverCropsPerHa, 0),
		Renewable:  safemath.EnsurePositive(p.RenewableEnergyKw*factors.RenewablePerKw, 0),
	}
	if p.MethaneInhibitor {
		s.MethaneInhibitorReduction = safemath.EnsurePositive(
			safemath.SafeDivide(e.Enteric*factors.MethaneInhibitorReduction*herd, factors.KgPerTonne, 0), 0)
	}
	if p.ImprovedManure {
		s.ImprovedManureReduction = safemath.EnsurePositive(
			safemath.SafeDivide(e.Manure*factors.ImprovedManureReduction*herd, factors.KgPerTonne, 0), 0)
	}

	s.Total = s.Trees + s.Hedgerows + s.Soil + s.CoverCrops + s.Renewable +
		s.MethaneInhibitorReduction + s.ImprovedManureReduction
	return s
}

// Intensity returns kg CO2e per litre of milk.
func Intensity(e Breakdown, milkYield float64) float64 {
	return safemath.SafeDivide(e.Total, milkYield, 0)
}

// FarmEmissions returns whole-farm gross emissions in t CO2e/year.
func FarmEmissions(e Breakdown, herdSize int) float64 {
	return safemath.SafeDivide(e.Total*farm.HerdCount(herdSize), factors.KgPerTonne, 0)
}

// NetFarmEmissions subtracts sequestration from gross farm emissions. A
// negative result means the farm is net carbon negative.
func NetFarmEmissions(farmEmissions float64, s Sequestration) float64 {
	return farmEmissions - s.Total
}

// FarmProduction returns annual milk output in thousands of litres.
func FarmProduction(milkYield float64, herdSize int) float64 {
	return safemath.SafeDivide(milkYield*farm.HerdCount(herdSize), factors.KgPerTonne, 0)
}
