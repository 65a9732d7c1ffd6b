package efficiency_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/efficiency"
	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/farm"
)

func TestLMEDefaults(t *testing.T) {
	p := farm.DefaultParameters()
	e := emissions.Calculate(p)
	r := efficiency.LME(p, e)

	assert.InDelta(t, 23.54, r.LME, 0.05)
	assert.InDelta(t, 29835.0, r.LifetimeProduction, 1e-9)
	assert.InDelta(t, 0.9, r.SystemFactor, 1e-12)
	assert.InDelta(t, 3.9*305, r.ProductiveDays, 1e-9)
	assert.Equal(t, efficiency.LMEExcellent, r.Interpretation)
	assert.InDelta(t, e.Total/8500, r.OriginalIntensity, 1e-12)
	assert.Equal(t, math.Round(r.LifetimeEmissions), r.LifetimeEmissions)
}

func TestLMESystemFactor(t *testing.T) {
	p := farm.DefaultParameters()
	e := emissions.Calculate(p)

	p.SystemType = farm.SystemModerate
	moderate := efficiency.LME(p, e).LME
	p.SystemType = farm.SystemExtensive
	extensive := efficiency.LME(p, e).LME
	p.SystemType = farm.SystemType("pasture")
	unknown := efficiency.LME(p, e).LME

	assert.InDelta(t, moderate*1.1, extensive, 1e-9)
	assert.InDelta(t, moderate, unknown, 1e-12)
}

func TestLMEDegenerate(t *testing.T) {
	p := farm.DefaultParameters()
	p.MilkYield = 0
	p.AvgLactations = 0

	r := efficiency.LME(p, emissions.Calculate(p))
	assert.Zero(t, r.LME)
	assert.Zero(t, r.LifetimeProduction)
	assert.Zero(t, r.OriginalIntensity)
	assert.Equal(t, efficiency.LMEPoor, r.Interpretation)
}

func TestInterpretLME(t *testing.T) {
	tests := []struct {
		lme  float64
		want string
	}{
		{12.01, efficiency.LMEExcellent},
		{12, efficiency.LMEGood},
		{10, efficiency.LMEAverage},
		{8, efficiency.LMEBelowAverage},
		{6, efficiency.LMEPoor},
		{0, efficiency.LMEPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, efficiency.InterpretLME(tt.lme), "lme %v", tt.lme)
	}
}

func TestNUEDefaults(t *testing.T) {
	r := efficiency.NUE(farm.DefaultParameters())

	feedN := 8.08 * 365 * 17.0 / 625
	assert.InDelta(t, 90.0, r.FertilizerN, 1e-9)
	assert.InDelta(t, feedN, r.FeedN, 1e-9)
	assert.InDelta(t, 46.75, r.Outputs, 1e-9)
	assert.InDelta(t, 46.75/(90+feedN)*100, r.NUE, 1e-9)
	assert.Equal(t, efficiency.TierPoor, r.Category)
	assert.InDelta(t, 0.45, r.ManureRecovery, 1e-12)
}

func TestNUENonFinite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*farm.Parameters)
	}{
		{"nan yield", func(p *farm.Parameters) { p.MilkYield = math.NaN() }},
		{"nan nitrogen", func(p *farm.Parameters) { p.NitrogenRate = math.NaN() }},
		{"nan concentrate", func(p *farm.Parameters) { p.ConcentrateFeed = math.NaN() }},
		{"infinite protein", func(p *farm.Parameters) { p.CrudeProtein = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := farm.DefaultParameters()
			tt.mutate(&p)
			r := efficiency.NUE(p)
			for _, v := range []float64{r.NUE, r.Inputs, r.Outputs, r.FertilizerN, r.FeedN} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%+v", r)
			}
		})
	}

	p := farm.DefaultParameters()
	p.MilkYield = math.NaN()
	assert.Zero(t, efficiency.NUE(p).Outputs)
}

func TestNUEMonotonic(t *testing.T) {
	t.Run("increasing in milk yield", func(t *testing.T) {
		p := farm.DefaultParameters()
		prev := -1.0
		for y := 1000.0; y <= 20000; y += 500 {
			p.MilkYield = y
			got := efficiency.NUE(p).NUE
			assert.Greater(t, got, prev, "yield %v", y)
			prev = got
		}
	})

	t.Run("decreasing in nitrogen rate", func(t *testing.T) {
		p := farm.DefaultParameters()
		prev := math.Inf(1)
		for n := 0.0; n <= 300; n += 10 {
			p.NitrogenRate = n
			got := efficiency.NUE(p).NUE
			assert.Less(t, got, prev, "rate %v", n)
			prev = got
		}
	})

	t.Run("capped at 150", func(t *testing.T) {
		p := farm.DefaultParameters()
		p.NitrogenRate = 0
		p.ConcentrateFeed = 0.1
		p.MilkYield = 20000
		assert.InDelta(t, 150.0, efficiency.NUE(p).NUE, 1e-12)
		assert.Equal(t, efficiency.TierExcellent, efficiency.NUE(p).Category)
	})

	t.Run("zero inputs", func(t *testing.T) {
		p := farm.DefaultParameters()
		p.NitrogenRate = 0
		p.ConcentrateFeed = 0
		assert.Zero(t, efficiency.NUE(p).NUE)
	})
}

func TestInterpretNUE(t *testing.T) {
	tests := []struct {
		nue  float64
		want string
	}{
		{100, efficiency.TierExcellent},
		{80, efficiency.TierGood},
		{60, efficiency.TierAverage},
		{59.9, efficiency.TierPoor},
	}
	for _, tt := range tests {
		got, desc := efficiency.InterpretNUE(tt.nue)
		assert.Equal(t, tt.want, got)
		assert.NotEmpty(t, desc)
	}
}

func TestManureNitrogenEfficiency(t *testing.T) {
	assert.InDelta(t, 0.45, efficiency.ManureNitrogenEfficiency(farm.ManureLiquidSlurry), 1e-12)
	assert.InDelta(t, 0.35, efficiency.ManureNitrogenEfficiency(farm.ManureSolid), 1e-12)
	assert.InDelta(t, 0.30, efficiency.ManureNitrogenEfficiency(farm.ManureDailySpread), 1e-12)
	assert.InDelta(t, 0.55, efficiency.ManureNitrogenEfficiency(farm.ManureAnaerobicDigester), 1e-12)
	assert.InDelta(t, 0.25, efficiency.ManureNitrogenEfficiency(farm.ManurePasture), 1e-12)
}

func TestNUERecommendations(t *testing.T) {
	p := farm.DefaultParameters()
	p.NitrogenRate = 250
	p.CrudeProtein = 19
	p.MilkYield = 7000
	p.FeedQuality = 6

	assert.Equal(t, []string{
		efficiency.RecReduceNitrogen,
		efficiency.RecOptimizeProtein,
		efficiency.RecAnaerobicDigest,
		efficiency.RecImproveYield,
		efficiency.RecImproveFeedQual,
	}, efficiency.NUERecommendations(p, 50))

	good := farm.DefaultParameters()
	good.FeedQuality = 9
	good.ManureSystem = farm.ManureAnaerobicDigester
	assert.Empty(t, efficiency.NUERecommendations(good, 50))
	assert.Empty(t, efficiency.NUERecommendations(farm.Parameters{
		FeedQuality: 9, MilkYield: 7000, ManureSystem: farm.ManureSolid,
	}, 85))
}

func TestNUEImprovement(t *testing.T) {
	current := farm.DefaultParameters()
	improved := current
	improved.NitrogenRate = 120

	assert.Positive(t, efficiency.NUEImprovement(current, improved))
	assert.Zero(t, efficiency.NUEImprovement(current, current))
}

func TestLMEPlus(t *testing.T) {
	r := efficiency.LMEPlus(15, 150)
	assert.InDelta(t, 22.5, r.LMEPlus, 1e-12)
	assert.InDelta(t, 100.0, r.Score, 1e-12)
	assert.Equal(t, efficiency.TierExcellent, r.Category)

	r = efficiency.LMEPlus(30, 0)
	assert.InDelta(t, 0.0, r.LMEPlus, 1e-12)
	assert.InDelta(t, 50.0, r.Score, 1e-12)
	assert.Equal(t, efficiency.TierPoor, r.Category)

	r = efficiency.LMEPlus(12, 90)
	require.InDelta(t, 10.8, r.LMEPlus, 1e-9)
	assert.InDelta(t, 40+30, r.Score, 1e-9)
	assert.Equal(t, efficiency.TierGood, r.Category)
}

func TestLMEPlusImprovement(t *testing.T) {
	current := farm.DefaultParameters()
	improved := current
	improved.NitrogenRate = 100

	assert.Positive(t, efficiency.LMEPlusImprovement(current, improved))
}
