// Package factors holds the static emission, sequestration and economic
// constants that parameterize every calculation, along with defaulting
// lookups for the season, manure system and production system tables.
package factors

// Enteric and feed emission factors.
//
// Per-cow values are kg CO2e per cow per year unless stated otherwise.
const (
	// BaseEnteric is the enteric fermentation baseline per cow.
	BaseEnteric = 2400.0

	// FeedMultiplier is kg CO2e of enteric methane added per kg/day of
	// seasonally adjusted concentrate feed.
	FeedMultiplier = 35.0

	// GrazingReduction is the manure emission reduction per grazing month.
	GrazingReduction = 30.0

	// DeforestationFactor is kg CO2e per kg of non-certified soya fed.
	DeforestationFactor = 3.5

	// NitrogenMultiplier is kg CO2e per kg N applied.
	NitrogenMultiplier = 4.0

	// DaysPerYear converts daily feed rates to annual quantities.
	DaysPerYear = 365.0

	// KgPerTonne converts kilograms to tonnes.
	KgPerTonne = 1000.0
)

// Manure system base factors, kg CO2e per cow per year.
const (
	ManureLiquidSlurry      = 500.0
	ManureSolid             = 300.0
	ManureDailySpread       = 150.0
	ManureAnaerobicDigester = 75.0
	ManurePasture           = 200.0
)

// Production system factors applied to LME.
const (
	SystemIntensiveFactor = 0.9
	SystemModerateFactor  = 1.0
	SystemExtensiveFactor = 1.1
)

// Sequestration rates, t CO2e per unit per year.
const (
	// TreesPerHa is tonnes sequestered per hectare of planted woodland.
	TreesPerHa = 3.67

	// HedgerowPerKm is tonnes sequestered per km of hedgerow.
	HedgerowPerKm = 0.6

	// SoilCarbonPerHa is tonnes sequestered per hectare under soil carbon management.
	SoilCarbonPerHa = 1.5

	// CoverCropsPerHa is tonnes sequestered per hectare of cover crops.
	CoverCropsPerHa = 0.8

	// RenewablePerKw is tonnes offset per kW of installed renewable capacity.
	RenewablePerKw = 0.4

	// MethaneInhibitorReduction is the fraction of enteric emissions removed
	// by a feed additive such as 3-NOP.
	MethaneInhibitorReduction = 0.15

	// ImprovedManureReduction is the fraction of manure emissions removed by
	// improved manure handling.
	ImprovedManureReduction = 0.30
)

// Economic constants.
const (
	// MilkPrice is the farm-gate milk price in £/L.
	MilkPrice = 0.32

	// RiskReportMilkPrice is the milk price used by the loan risk report.
	RiskReportMilkPrice = 0.35

	// CarbonCreditPrice is £ per tonne CO2e.
	CarbonCreditPrice = 25.0

	// OperationalCostPerLitre is the base operational cost in £/L.
	OperationalCostPerLitre = 0.25

	// HeiferRearingPerMonth is £ per month of rearing to first calving.
	HeiferRearingPerMonth = 50.0

	// NitrogenCostPerKg is £ per kg N applied.
	NitrogenCostPerKg = 4.0
)

// Performance targets used by KPI assessment. Emissions are kg CO2e/L, cost
// is £/L, efficiencies and rates are percentages, intervals are days and
// calving ages are months.
const (
	EmissionsTarget           = 1.2
	CostTarget                = 0.35
	ProteinEfficiencyTarget   = 12.0
	NitrogenEfficiencyTarget  = 15.0
	CalvingIntervalTarget     = 385.0
	AgeFirstCalvingTarget     = 24.0
	FeedCarbonFootprintLimit  = 1.0
	SoyaContentWarning        = 10.0
	HerdEffectivenessTarget   = 70.0
	LMETarget                 = 10.0
	FeedEfficiencyTarget      = 2.3
	RetentionRateTarget       = 75.0
	AgeFirstCalvingBenchmark  = 25.0
	ReferenceConcentrateFeed  = 8.08
	ReferenceCrudeProtein     = 17.0
	ReferenceNitrogenRate     = 180.0
	ReferenceMilkYield        = 8500.0
	GrazingMonthsPerYear      = 12.0
	ProteinEfficiencyBase     = 14.3
	NitrogenEfficiencyBase    = 17.6
	NitrogenEfficiencyFloor   = 5.0
	NitrogenEfficiencyCeiling = 50.0
)

// Performance penalty constants. Each contribution is scaled by its factor
// and then capped independently before the contributions are summed.
const (
	PenaltyYieldThreshold = 8000.0
	PenaltyYieldFactor    = 0.5
	PenaltyYieldCap       = 0.15

	PenaltyFeedRatioThreshold = 0.35
	PenaltyFeedRatioFactor    = 0.5
	PenaltyFeedRatioCap       = 0.10

	PenaltyFootprintThreshold = 1.0
	PenaltyFootprintFactor    = 0.2
	PenaltyFootprintCap       = 0.05

	PenaltyNitrogenThreshold = 150.0
	PenaltyNitrogenFactor    = 0.1
	PenaltyNitrogenCap       = 0.05

	PenaltySoyaThreshold = 10.0
	PenaltySoyaFactor    = 0.5
	PenaltySoyaCap       = 0.05

	PenaltyGrazingThreshold = 6.0
	PenaltyGrazingFactor    = 0.05
	PenaltyGrazingCap       = 0.05

	// PenaltyTotalCap bounds the performance multiplier at 1.40.
	PenaltyTotalCap = 0.40

	// FertilityLactationTarget is the lactation count below which replacement
	// overhead is charged.
	FertilityLactationTarget = 3.0
	FertilityLactationFactor = 0.10

	// FertilityCalvingTarget is the calving interval in days above which lost
	// productivity is charged.
	FertilityCalvingTarget = 365.0
	FertilityCalvingFactor = 0.001
)

// Lifetime methane efficiency constants.
const (
	PersistenceFactor   = 0.9
	DaysPerLactation    = 305.0
	BaseDMI             = 8.0
	DMIYieldFactor      = 0.4
	FeedQualityBase     = 1.1
	FeedQualityFactor   = 0.02
	MethaneBase         = 0.35
	MethaneDMIFactor    = 0.023
	NonProductiveFactor = 0.3
	DaysPerMonth        = 30.5
)

// LME interpretation thresholds, L milk per kg CO2e. Comparisons are strict.
const (
	LMEExcellent    = 12.0
	LMEGood         = 10.0
	LMEAverage      = 8.0
	LMEBelowAverage = 6.0
)

// Nitrogen use efficiency constants.
const (
	// HectaresPerCow converts the per-hectare N rate to a per-cow input.
	HectaresPerCow = 0.5

	// ProteinToNitrogen divides crude protein % to give the N fraction.
	ProteinToNitrogen = 625.0

	// DefaultFeedNitrogen is the N fraction used when protein is unusable.
	DefaultFeedNitrogen = 0.025

	// MilkNitrogenContent is kg N per litre of milk.
	MilkNitrogenContent = 0.0055

	// NUECap is the maximum reported NUE percentage.
	NUECap = 150.0

	NUEExcellent = 100.0
	NUEGood      = 80.0
	NUEAverage   = 60.0
)

// Theoretical minimum and regional reference floors, kg CO2e per cow per year.
const (
	TheoreticalMinimumPerCow = 2000.0
	ReferenceUK              = 2200.0
	ReferenceNZ              = 1700.0
	ReferenceEU              = 2100.0
	ReferenceGlobal          = 2500.0

	// TMExcellent, TMGood and TMAverage are percent-above-floor tier bounds.
	TMExcellent = 10.0
	TMGood      = 25.0
	TMAverage   = 50.0
)
