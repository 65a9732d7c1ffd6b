package factors

import "github.com/rshade/herdcarbon/internal/farm"

// Seasonal holds the feed and nitrogen multipliers for one season.
type Seasonal struct {
	Feed     float64
	Nitrogen float64
}

// SeasonalFactors returns the multipliers for s. Unrecognised seasons use
// the Summer row, which is neutral.
func SeasonalFactors(s farm.Season) Seasonal {
	switch s {
	case farm.SeasonSpring:
		return Seasonal{Feed: 1.1, Nitrogen: 1.2}
	case farm.SeasonAutumn:
		return Seasonal{Feed: 1.2, Nitrogen: 0.8}
	case farm.SeasonWinter:
		return Seasonal{Feed: 1.3, Nitrogen: 0.6}
	case farm.SeasonSummer:
		return Seasonal{Feed: 1.0, Nitrogen: 1.0}
	default:
		return Seasonal{Feed: 1.0, Nitrogen: 1.0}
	}
}

// ManureFactor returns the base manure emission factor for m. Unrecognised
// systems fall back to Liquid/slurry.
func ManureFactor(m farm.ManureSystem) float64 {
	switch m {
	case farm.ManureSolid:
		return ManureSolid
	case farm.ManureDailySpread:
		return ManureDailySpread
	case farm.ManureAnaerobicDigester:
		return ManureAnaerobicDigester
	case farm.ManurePasture:
		return ManurePasture
	case farm.ManureLiquidSlurry:
		return ManureLiquidSlurry
	default:
		return ManureLiquidSlurry
	}
}

// SystemFactor returns the LME adjustment for t, defaulting to moderate.
func SystemFactor(t farm.SystemType) float64 {
	switch t {
	case farm.SystemIntensive:
		return SystemIntensiveFactor
	case farm.SystemExtensive:
		return SystemExtensiveFactor
	case farm.SystemModerate:
		return SystemModerateFactor
	default:
		return SystemModerateFactor
	}
}

// AdjustedFeed returns concentrate feed scaled by the seasonal feed factor.
func AdjustedFeed(p farm.Parameters) float64 {
	return p.ConcentrateFeed * SeasonalFactors(p.Season).Feed
}

// AdjustedNitrogen returns the nitrogen rate scaled by the seasonal factor.
func AdjustedNitrogen(p farm.Parameters) float64 {
	return p.NitrogenRate * SeasonalFactors(p.Season).Nitrogen
}

// Reference is a named regional per-cow emissions benchmark.
type Reference struct {
	Name   string
	PerCow float64
}

// References lists the regional benchmarks in display order.
func References() []Reference {
	return []Reference{
		{Name: "UK average", PerCow: ReferenceUK},
		{Name: "NZ average", PerCow: ReferenceNZ},
		{Name: "EU average", PerCow: ReferenceEU},
		{Name: "Global average", PerCow: ReferenceGlobal},
	}
}
