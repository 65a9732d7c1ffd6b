package farm

import "github.com/rshade/herdcarbon/internal/safemath"

// floatFields returns pointers to every numeric input of p, in declaration
// order.
func (p *Parameters) floatFields() []*float64 {
	return []*float64{
		&p.FeedQuality, &p.ConcentrateFeed, &p.FeedCost, &p.FeedCarbonFootprint,
		&p.SoyaContent, &p.CrudeProtein, &p.NitrogenRate,
		&p.MilkYield, &p.AvgLactations, &p.CalvingInterval, &p.AgeFirstCalving,
		&p.CullingAge, &p.Birthweight, &p.GrazingMonths,
		&p.TreePlantingHa, &p.HedgerowKm, &p.SoilCarbonHa, &p.CoverCropsHa,
		&p.RenewableEnergyKw, &p.LoanAmount,
	}
}

// Sanitized returns a copy of p that every formula can consume: NaN and
// infinite values become 0 and a negative herd becomes empty. Out-of-range
// but finite values are kept; Validate reports them.
func (p Parameters) Sanitized() Parameters {
	for _, f := range p.floatFields() {
		if !safemath.IsFinite(*f) {
			*f = 0
		}
	}
	p.HerdSize = max(p.HerdSize, 0)
	return p
}

// IsFinite reports whether every numeric input is neither NaN nor ±Inf.
func (p Parameters) IsFinite() bool {
	for _, f := range p.floatFields() {
		if !safemath.IsFinite(*f) {
			return false
		}
	}
	return true
}
