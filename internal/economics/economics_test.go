package economics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/economics"
	"github.com/rshade/herdcarbon/internal/farm"
)

func TestCalculateDefaults(t *testing.T) {
	c := economics.Calculate(farm.DefaultParameters())

	assert.InDelta(t, 8.08*0.35*365, c.Feed, 1e-9)
	assert.InDelta(t, 720.0, c.Nitrogen, 1e-9)
	assert.InDelta(t, 2125.0, c.Operational, 1e-9)
	assert.InDelta(t, 50*24.7*(100/3.9)/100, c.Heifer, 1e-9)
	assert.InDelta(t, c.Feed+c.Nitrogen+c.Operational+c.Heifer, c.TotalPerCow, 1e-9)
	assert.InDelta(t, c.TotalPerCow/8500, c.CostPerLitre, 1e-12)
}

func TestCalculateSeasonal(t *testing.T) {
	p := farm.DefaultParameters()
	p.Season = farm.SeasonSpring
	c := economics.Calculate(p)

	assert.InDelta(t, 8.08*1.1*0.35*365, c.Feed, 1e-9)
	assert.InDelta(t, 180*1.2*4, c.Nitrogen, 1e-9)
}

func TestCalculateDegenerate(t *testing.T) {
	p := farm.DefaultParameters()
	p.MilkYield = 0
	p.AvgLactations = 0

	c := economics.Calculate(p)
	assert.Zero(t, c.Heifer)
	assert.Zero(t, c.Operational)
	assert.Zero(t, c.CostPerLitre)
}

func TestCalculateNonFinite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*farm.Parameters)
	}{
		{"nan yield", func(p *farm.Parameters) { p.MilkYield = math.NaN() }},
		{"nan nitrogen", func(p *farm.Parameters) { p.NitrogenRate = math.NaN() }},
		{"nan concentrate", func(p *farm.Parameters) { p.ConcentrateFeed = math.NaN() }},
		{"infinite feed cost", func(p *farm.Parameters) { p.FeedCost = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := farm.DefaultParameters()
			tt.mutate(&p)
			c := economics.Calculate(p)

			for _, v := range []float64{c.Feed, c.Nitrogen, c.Operational, c.Heifer, c.TotalPerCow, c.CostPerLitre} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%+v", c)
				assert.GreaterOrEqual(t, v, 0.0)
			}

			rev := economics.Revenue(p.MilkYield, p.HerdSize)
			profit := economics.Profit(rev, c.TotalPerCow, p.HerdSize)
			assert.False(t, math.IsNaN(rev) || math.IsInf(rev, 0))
			assert.False(t, math.IsNaN(profit) || math.IsInf(profit, 0))
		})
	}

	t.Run("nan yield costs and earns nothing", func(t *testing.T) {
		p := farm.DefaultParameters()
		p.MilkYield = math.NaN()
		c := economics.Calculate(p)
		assert.Zero(t, c.Operational)
		assert.Zero(t, c.CostPerLitre)
		assert.Zero(t, economics.Revenue(p.MilkYield, p.HerdSize))
	})
}

func TestBreakdown(t *testing.T) {
	t.Run("shares", func(t *testing.T) {
		items := economics.Breakdown(economics.Costs{
			Feed: 500, Nitrogen: 100, Operational: 300, Heifer: 100, TotalPerCow: 1000,
		})
		require.Len(t, items, 4)

		assert.Equal(t, economics.CategoryFeed, items[0].Name)
		assert.InDelta(t, 50.0, items[0].Percent, 1e-9)
		assert.InDelta(t, 500.0, items[0].Amount, 1e-9)
		assert.InDelta(t, 10.0, items[1].Percent, 1e-9)
		assert.InDelta(t, 30.0, items[2].Percent, 1e-9)
		assert.InDelta(t, 10.0, items[3].Percent, 1e-9)
	})

	t.Run("zero total uses reference split", func(t *testing.T) {
		items := economics.Breakdown(economics.Costs{})
		require.Len(t, items, 4)

		want := []float64{40, 10, 35, 15}
		for i, item := range items {
			assert.InDelta(t, want[i], item.Percent, 1e-12, item.Name)
			assert.Zero(t, item.Amount)
		}
	})
}

func TestRevenueAndProfit(t *testing.T) {
	rev := economics.Revenue(8000, 100)
	assert.InDelta(t, 256000.0, rev, 1e-9)
	assert.InDelta(t, 56000.0, economics.Profit(rev, 2000, 100), 1e-9)
	assert.Zero(t, economics.Revenue(8000, 0))
	assert.Zero(t, economics.Revenue(8000, -10))
	assert.Zero(t, economics.Profit(0, 2000, -10))
	assert.Zero(t, economics.Profit(math.NaN(), 2000, 100))
}
