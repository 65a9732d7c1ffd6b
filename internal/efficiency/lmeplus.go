package efficiency

import (
	"math"

	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// LMEPlusResult combines LME and NUE into one sustainability view.
type LMEPlusResult struct {
	LME     float64 `json:"lme"`
	NUE     float64 `json:"nue"`
	LMEPlus float64 `json:"lmePlus"`
	// Score is 0–100: up to 50 points each for LME and NUE.
	Score       float64 `json:"score"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// LMEPlus weights lme by nue/100 and scores both out of 50.
func LMEPlus(lme, nue float64) LMEPlusResult {
	plus := lme * safemath.SafeDivide(nue, 100, 1)
	score := math.Min(safemath.SafeDivide(lme, 15, 0)*50, 50) +
		math.Min(safemath.SafeDivide(nue, 150, 0)*50, 50)

	cat, desc := InterpretLMEPlus(plus, score)
	return LMEPlusResult{
		LME:         lme,
		NUE:         nue,
		LMEPlus:     plus,
		Score:       score,
		Category:    cat,
		Description: desc,
	}
}

// InterpretLMEPlus requires both the score and the combined value to clear
// each tier.
func InterpretLMEPlus(lmePlus, score float64) (category, description string) {
	switch {
	case score >= 80 && lmePlus >= 10:
		return TierExcellent, "Industry-leading sustainability performance"
	case score >= 65 && lmePlus >= 8:
		return TierGood, "Above average environmental efficiency"
	case score >= 50 && lmePlus >= 6:
		return TierAverage, "Room for improvement in both metrics"
	default:
		return TierPoor, "Significant opportunities for improvement"
	}
}

// LMEPlusImprovement returns the change in the combined value from moving
// current to improved.
func LMEPlusImprovement(current, improved farm.Parameters) float64 {
	score := func(p farm.Parameters) float64 {
		lme := LME(p, emissions.Calculate(p))
		return LMEPlus(lme.LME, NUE(p).NUE).LMEPlus
	}
	return score(improved) - score(current)
}
