package efficiency

import (
	"math"

	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// Tier categories shared by NUE, LME+NUE and the theoretical minimum.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierAverage   = "Average"
	TierPoor      = "Poor"
)

// NUE recommendation texts.
const (
	RecReduceNitrogen  = "Reduce N fertilizer application rate to <200 kg N/ha"
	RecOptimizeProtein = "Optimize dietary protein to 16-18% CP"
	RecAnaerobicDigest = "Consider anaerobic digestion for better N recovery"
	RecImproveYield    = "Improve milk productivity to dilute N losses"
	RecImproveFeedQual = "Improve feed quality for better N utilization"
)

const (
	recNitrogenLimit    = 200.0
	recProteinLimit     = 18.0
	recYieldLimit       = 8000.0
	recFeedQualityLimit = 8.0
)

// NUEResult is the nitrogen balance of an average cow, kg N/cow/year.
type NUEResult struct {
	NUE            float64 `json:"nue"`
	Inputs         float64 `json:"inputs"`
	Outputs        float64 `json:"outputs"`
	FertilizerN    float64 `json:"fertilizerN"`
	FeedN          float64 `json:"feedN"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	ManureRecovery float64 `json:"manureRecovery"`
}

// FeedNitrogenContent converts crude protein % to the N fraction of feed.
func FeedNitrogenContent(crudeProtein float64) float64 {
	return safemath.SafeDivide(crudeProtein, factors.ProteinToNitrogen, factors.DefaultFeedNitrogen)
}

// NUE computes nitrogen use efficiency as milk N output over fertilizer and
// feed N input, capped at 150%.
func NUE(p farm.Parameters) NUEResult {
	fertN := safemath.EnsurePositive(p.NitrogenRate*factors.HectaresPerCow, 0)
	feedN := safemath.EnsurePositive(p.ConcentrateFeed*factors.DaysPerYear*FeedNitrogenContent(p.CrudeProtein), 0)
	inputs := fertN + feedN
	outputs := safemath.EnsurePositive(p.MilkYield*factors.MilkNitrogenContent, 0)

	nue := math.Min(safemath.SafeDivide(outputs, inputs, 0)*100, factors.NUECap)
	if !safemath.IsFinite(nue) {
		nue = 0
	}

	cat, desc := InterpretNUE(nue)
	return NUEResult{
		NUE:            nue,
		Inputs:         inputs,
		Outputs:        outputs,
		FertilizerN:    fertN,
		FeedN:          feedN,
		Category:       cat,
		Description:    desc,
		ManureRecovery: ManureNitrogenEfficiency(p.ManureSystem),
	}
}

// InterpretNUE returns the tier and its description. Thresholds are inclusive.
func InterpretNUE(nue float64) (category, description string) {
	switch {
	case nue >= factors.NUEExcellent:
		return TierExcellent, "Outstanding nitrogen efficiency"
	case nue >= factors.NUEGood:
		return TierGood, "Above average nitrogen efficiency"
	case nue >= factors.NUEAverage:
		return TierAverage, "Room for improvement in N management"
	default:
		return TierPoor, "Significant N losses to environment"
	}
}

// ManureNitrogenEfficiency is the fraction of manure N recovered by each
// system. Unrecognised systems use the Liquid/slurry value.
func ManureNitrogenEfficiency(ms farm.ManureSystem) float64 {
	switch ms {
	case farm.ManureSolid:
		return 0.35
	case farm.ManureDailySpread:
		return 0.30
	case farm.ManureAnaerobicDigester:
		return 0.55
	case farm.ManurePasture:
		return 0.25
	case farm.ManureLiquidSlurry:
		return 0.45
	default:
		return 0.45
	}
}

// NUERecommendations lists nitrogen management actions for p given its
// current NUE, in a fixed order.
func NUERecommendations(p farm.Parameters, nue float64) []string {
	var recs []string
	if p.NitrogenRate > recNitrogenLimit {
		recs = append(recs, RecReduceNitrogen)
	}
	if p.CrudeProtein > recProteinLimit {
		recs = append(recs, RecOptimizeProtein)
	}
	if p.ManureSystem != farm.ManureAnaerobicDigester && nue < factors.NUEGood {
		recs = append(recs, RecAnaerobicDigest)
	}
	if p.MilkYield < recYieldLimit && nue < factors.NUEGood {
		recs = append(recs, RecImproveYield)
	}
	if p.FeedQuality < recFeedQualityLimit {
		recs = append(recs, RecImproveFeedQual)
	}
	return recs
}

// NUEImprovement returns the NUE gain from moving current to improved.
func NUEImprovement(current, improved farm.Parameters) float64 {
	return NUE(improved).NUE - NUE(current).NUE
}
