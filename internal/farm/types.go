package farm

import "fmt"

// Season selects the seasonal adjustment row applied to feed and nitrogen.
type Season string

// Recognised seasons.
const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
)

// Seasons lists every recognised season in calendar order.
func Seasons() []Season {
	return []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}
}

// Valid reports whether s is a recognised season.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	default:
		return false
	}
}

// SystemType is the production intensity used by the LME system factor.
type SystemType string

// Recognised production system types.
const (
	SystemIntensive SystemType = "intensive"
	SystemModerate  SystemType = "moderate"
	SystemExtensive SystemType = "extensive"
)

// SystemTypes lists every recognised production system type.
func SystemTypes() []SystemType {
	return []SystemType{SystemIntensive, SystemModerate, SystemExtensive}
}

// Valid reports whether t is a recognised system type.
func (t SystemType) Valid() bool {
	switch t {
	case SystemIntensive, SystemModerate, SystemExtensive:
		return true
	default:
		return false
	}
}

// HousingSystem describes how the herd is kept. It is a separate concern from
// SystemType and only meets it through SystemType().
type HousingSystem string

// Recognised housing systems.
const (
	HousingPasture  HousingSystem = "pasture"
	HousingConfined HousingSystem = "confined"
	HousingHybrid   HousingSystem = "hybrid"
)

// ParseHousingSystem converts a flag value into a HousingSystem.
func ParseHousingSystem(s string) (HousingSystem, error) {
	h := HousingSystem(s)
	switch h {
	case HousingPasture, HousingConfined, HousingHybrid:
		return h, nil
	default:
		return "", fmt.Errorf("%w: %q (want pasture, confined or hybrid)", ErrInvalidHousingSystem, s)
	}
}

// SystemType maps a housing system onto the production intensity scale.
// Confined herds are treated as intensive, grazing herds as extensive.
func (h HousingSystem) SystemType() SystemType {
	switch h {
	case HousingConfined:
		return SystemIntensive
	case HousingPasture:
		return SystemExtensive
	case HousingHybrid:
		return SystemModerate
	default:
		return SystemModerate
	}
}

// ManureSystem is the manure management method; each has a fixed base
// emission factor.
type ManureSystem string

// Recognised manure systems.
const (
	ManureLiquidSlurry      ManureSystem = "Liquid/slurry"
	ManureSolid             ManureSystem = "Solid"
	ManureDailySpread       ManureSystem = "Daily spread"
	ManureAnaerobicDigester ManureSystem = "Anaerobic digester"
	ManurePasture           ManureSystem = "Pasture"
)

// ManureSystems lists every recognised manure system.
func ManureSystems() []ManureSystem {
	return []ManureSystem{
		ManureLiquidSlurry, ManureSolid, ManureDailySpread, ManureAnaerobicDigester, ManurePasture,
	}
}

// Valid reports whether m is a recognised manure system.
func (m ManureSystem) Valid() bool {
	for _, known := range ManureSystems() {
		if m == known {
			return true
		}
	}
	return false
}

// LandType is descriptive context carried through to reports.
type LandType string

// Recognised land types.
const (
	LandLowland LandType = "Lowland"
	LandUpland  LandType = "Upland"
	LandHill    LandType = "Hill"
)

// ForageContent is descriptive context carried through to reports.
type ForageContent string

// Recognised forage content bands.
const (
	ForageLow   ForageContent = "Low <15%"
	ForageMixed ForageContent = "Mixed 15-75%"
	ForageHigh  ForageContent = "High >75%"
)
