// Package farm defines the farm parameter record that drives every
// calculation, together with its enumerations, defaults, range validation and
// file loading.
package farm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Parameters is the sole input to the calculation engine. Calculations never
// mutate it; callers derive new snapshots by copying.
type Parameters struct {
	HerdSize   int        `json:"herdSize"   yaml:"herdSize"   validate:"min=1,max=10000"`
	Season     Season     `json:"season"     yaml:"season"`
	SystemType SystemType `json:"systemType" yaml:"systemType"`

	// Feed.
	FeedQuality         float64 `json:"feedQuality"         yaml:"feedQuality"         validate:"min=1,max=10"`
	ConcentrateFeed     float64 `json:"concentrateFeed"     yaml:"concentrateFeed"     validate:"min=0,max=30"`
	FeedCost            float64 `json:"feedCost"            yaml:"feedCost"`
	FeedCarbonFootprint float64 `json:"feedCarbonFootprint" yaml:"feedCarbonFootprint"`
	SoyaContent         float64 `json:"soyaContent"         yaml:"soyaContent"         validate:"min=0,max=100"`
	DeforestationFree   bool    `json:"deforestationFree"   yaml:"deforestationFree"`
	CrudeProtein        float64 `json:"crudeProtein"        yaml:"crudeProtein"        validate:"min=12,max=22"`

	// Nutrient management.
	NitrogenRate float64      `json:"nitrogenRate" yaml:"nitrogenRate" validate:"min=0,max=300"`
	ManureSystem ManureSystem `json:"manureSystem" yaml:"manureSystem"`

	// Production and fertility.
	MilkYield       float64 `json:"milkYield"       yaml:"milkYield"       validate:"min=1000,max=20000"`
	AvgLactations   float64 `json:"avgLactations"   yaml:"avgLactations"   validate:"min=1,max=10"`
	CalvingInterval float64 `json:"calvingInterval" yaml:"calvingInterval" validate:"min=300,max=600"`
	AgeFirstCalving float64 `json:"ageFirstCalving" yaml:"ageFirstCalving" validate:"min=18,max=36"`
	CullingAge      float64 `json:"cullingAge"      yaml:"cullingAge"`
	Birthweight     float64 `json:"birthweight"     yaml:"birthweight"`
	GrazingMonths   float64 `json:"grazingMonths"   yaml:"grazingMonths"`

	LandType      LandType      `json:"landType"      yaml:"landType"`
	ForageContent ForageContent `json:"forageContent" yaml:"forageContent"`

	// Sequestration and technology.
	TreePlantingHa    float64 `json:"treePlantingHa"    yaml:"treePlantingHa"`
	HedgerowKm        float64 `json:"hedgerowKm"        yaml:"hedgerowKm"`
	SoilCarbonHa      float64 `json:"soilCarbonHa"      yaml:"soilCarbonHa"`
	CoverCropsHa      float64 `json:"coverCropsHa"      yaml:"coverCropsHa"`
	RenewableEnergyKw float64 `json:"renewableEnergyKw" yaml:"renewableEnergyKw"`
	MethaneInhibitor  bool    `json:"methaneInhibitor"  yaml:"methaneInhibitor"`
	ImprovedManure    bool    `json:"improvedManure"    yaml:"improvedManure"`

	// Loan.
	LoanAmount float64 `json:"loanAmount" yaml:"loanAmount"`
	LoanTerm   int     `json:"loanTerm"   yaml:"loanTerm"`
}

// Default parameter values for a typical UK lowland dairy herd.
const (
	DefaultHerdSize            = 150
	DefaultFeedQuality         = 7.0
	DefaultConcentrateFeed     = 8.08
	DefaultFeedCost            = 0.35
	DefaultFeedCarbonFootprint = 0.75
	DefaultNitrogenRate        = 180.0
	DefaultCrudeProtein        = 17.0
	DefaultMilkYield           = 8500.0
	DefaultAvgLactations       = 3.9
	DefaultCalvingInterval     = 380.0
	DefaultAgeFirstCalving     = 24.7
	DefaultCullingAge          = 6.12
	DefaultBirthweight         = 40.0
	DefaultGrazingMonths       = 7.0
	DefaultLoanAmount          = 500000.0
	DefaultLoanTerm            = 10
)

// DefaultParameters returns the baseline farm used when no overrides are given.
func DefaultParameters() Parameters {
	return Parameters{
		HerdSize:            DefaultHerdSize,
		Season:              SeasonSummer,
		SystemType:          SystemIntensive,
		FeedQuality:         DefaultFeedQuality,
		ConcentrateFeed:     DefaultConcentrateFeed,
		FeedCost:            DefaultFeedCost,
		FeedCarbonFootprint: DefaultFeedCarbonFootprint,
		NitrogenRate:        DefaultNitrogenRate,
		CrudeProtein:        DefaultCrudeProtein,
		ManureSystem:        ManureLiquidSlurry,
		MilkYield:           DefaultMilkYield,
		AvgLactations:       DefaultAvgLactations,
		CalvingInterval:     DefaultCalvingInterval,
		AgeFirstCalving:     DefaultAgeFirstCalving,
		CullingAge:          DefaultCullingAge,
		Birthweight:         DefaultBirthweight,
		GrazingMonths:       DefaultGrazingMonths,
		LandType:            LandLowland,
		ForageContent:       ForageMixed,
		LoanAmount:          DefaultLoanAmount,
		LoanTerm:            DefaultLoanTerm,
	}
}

// Herd returns the herd size as a float for use in formulas. A negative
// herd counts as empty.
func (p Parameters) Herd() float64 {
	return HerdCount(p.HerdSize)
}

// HerdCount converts a head count to a formula multiplier, flooring negative
// counts at zero.
func HerdCount(n int) float64 {
	return float64(max(n, 0))
}

// Fingerprint returns a stable SHA-256 digest of every field. Two snapshots
// with equal field values share a fingerprint, which makes it usable as a
// memoization key. NaN fields hash consistently.
func (p Parameters) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", p)))
	return hex.EncodeToString(sum[:])
}
