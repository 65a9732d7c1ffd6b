// Package economics computes the per-cow annual cost model, its percentage
// breakdown, and farm revenue and profit.
package economics

import (
	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// Cost category names used in breakdowns and reports.
const (
	CategoryFeed        = "Feed Costs"
	CategoryNitrogen    = "Nitrogen Costs"
	CategoryOperational = "Operational Costs"
	CategoryHeifer      = "Heifer Costs"
)

// Costs is the annual cost per cow in £.
type Costs struct {
	Feed         float64 `json:"feed"`
	Nitrogen     float64 `json:"nitrogen"`
	Operational  float64 `json:"operational"`
	Heifer       float64 `json:"heifer"`
	TotalPerCow  float64 `json:"totalPerCow"`
	CostPerLitre float64 `json:"costPerLitre"`
}

// BreakdownItem is one cost category's share of the total.
type BreakdownItem struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Amount  float64 `json:"amount"`
}

// HeiferCost spreads the rearing cost of a replacement heifer over the
// herd's replacement rate.
func HeiferCost(avgLactations, ageFirstCalving float64) float64 {
	replacementRate := safemath.SafeDivide(100, avgLactations, 0)
	perHead := factors.HeiferRearingPerMonth * ageFirstCalving
	return safemath.SafeDivide(perHead*replacementRate, 100, 0)
}

// Calculate returns the annual cost model for p.
func Calculate(p farm.Parameters) Costs {
	seasonal := factors.SeasonalFactors(p.Season)

	// Each term is a non-negative amount; NaN inputs cost nothing.
	c := Costs{
		Feed:        safemath.EnsurePositive(p.ConcentrateFeed*seasonal.Feed*p.FeedCost*factors.DaysPerYear, 0),
		Nitrogen:    safemath.EnsurePositive(p.NitrogenRate*seasonal.Nitrogen*factors.NitrogenCostPerKg, 0),
		Operational: safemath.EnsurePositive(factors.OperationalCostPerLitre*p.MilkYield, 0),
		Heifer:      safemath.EnsurePositive(HeiferCost(p.AvgLactations, p.AgeFirstCalving), 0),
	}
	c.TotalPerCow = safemath.SafeSum(c.Feed, c.Nitrogen, c.Operational, c.Heifer)
	c.CostPerLitre = safemath.SafeDivide(c.TotalPerCow, p.MilkYield, 0)
	return c
}

// Breakdown returns each category's share of the total cost. A zero total
// yields the reference split 40/10/35/15 with zero amounts.
func Breakdown(c Costs) []BreakdownItem {
	if c.TotalPerCow == 0 {
		return []BreakdownItem{
			{Name: CategoryFeed, Percent: 40},
			{Name: CategoryNitrogen, Percent: 10},
			{Name: CategoryOperational, Percent: 35},
			{Name: CategoryHeifer, Percent: 15},
		}
	}

	item := func(name string, amount float64) BreakdownItem {
		return BreakdownItem{
			Name:    name,
			Percent: safemath.Percentage(amount, c.TotalPerCow, safemath.DefaultPercentDecimals),
			Amount:  amount,
		}
	}
	return []BreakdownItem{
		item(CategoryFeed, c.Feed),
		item(CategoryNitrogen, c.Nitrogen),
		item(CategoryOperational, c.Operational),
		item(CategoryHeifer, c.Heifer),
	}
}

// Revenue is annual milk income for the whole herd in £. An empty or
// negative herd, or an unusable yield, earns nothing.
func Revenue(milkYield float64, herdSize int) float64 {
	return safemath.EnsurePositive(milkYield*farm.HerdCount(herdSize)*factors.MilkPrice, 0)
}

// Profit subtracts whole-herd costs from revenue. It may be negative but is
// always finite.
func Profit(revenue, costPerCow float64, herdSize int) float64 {
	profit := revenue - costPerCow*farm.HerdCount(herdSize)
	if !safemath.IsFinite(profit) {
		return 0
	}
	return profit
}
