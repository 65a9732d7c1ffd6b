package pathway_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/pathway"
)

func TestTheoreticalMinimum(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 150, 5000} {
		assert.InDelta(t, float64(n)*2000, pathway.TheoreticalMinimum(n, 0), 1e-9, "herd %d", n)
		assert.InDelta(t, 2*pathway.TheoreticalMinimum(n, 0), pathway.TheoreticalMinimum(2*n, 0), 1e-9)
	}
	assert.Zero(t, pathway.TheoreticalMinimum(-5, 0))
	assert.InDelta(t, 170000.0, pathway.TheoreticalMinimum(100, 1700), 1e-9)
	assert.InDelta(t, 200000.0, pathway.TheoreticalMinimum(100, -1), 1e-9)
}

func TestPercentageAboveAndGap(t *testing.T) {
	assert.InDelta(t, 200000.0, pathway.TheoreticalMinimum(100, 0), 1e-9)
	assert.InDelta(t, 50.0, pathway.PercentageAboveTM(300000, 100), 1e-9)
	assert.InDelta(t, 100000.0, pathway.GapToTM(300000, 100), 1e-9)

	for _, n := range []int{1, 10, 250} {
		assert.Zero(t, pathway.PercentageAboveTM(pathway.TheoreticalMinimum(n, 0), n))
	}
	assert.Zero(t, pathway.PercentageAboveTM(123456, 0))
	assert.Zero(t, pathway.GapToTM(150000, 100))
	assert.InDelta(t, -25.0, pathway.PercentageAboveTM(150000, 100), 1e-9)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{-5, pathway.TierExcellent},
		{10, pathway.TierExcellent},
		{10.1, pathway.TierGood},
		{25, pathway.TierGood},
		{50, pathway.TierAverage},
		{50.1, pathway.TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pathway.Interpret(tt.pct).Category, "pct %v", tt.pct)
	}
	assert.Equal(t, "Near biological minimum - outstanding efficiency", pathway.Interpret(0).Description)
}

func TestAnalyze(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 100
	e := emissions.Breakdown{Total: 3000}

	a := pathway.Analyze(p, e)
	assert.InDelta(t, 300000.0, a.CurrentEmissions, 1e-6)
	assert.InDelta(t, 200000.0, a.TheoreticalMinimum, 1e-9)
	assert.InDelta(t, 50.0, a.PercentageAbove, 1e-6)
	assert.InDelta(t, 100000.0, a.Gap, 1e-6)
	assert.Equal(t, pathway.TierAverage, a.Interpretation.Category)
	require.Len(t, a.References, 4)
	assert.InDelta(t, 800.0, a.References[0].Difference, 1e-9)

	custom := pathway.Floor(2500).Analyze(p, e)
	assert.InDelta(t, 20.0, custom.PercentageAbove, 1e-6)
}

func TestReductionOpportunities(t *testing.T) {
	t.Run("at or below floor", func(t *testing.T) {
		p := farm.DefaultParameters()
		p.HerdSize = 100

		o := pathway.ReductionOpportunities(p, 200000)
		assert.Zero(t, o.TotalPotential)
		assert.True(t, o.CanReachTM)
		o = pathway.ReductionOpportunities(p, 150000)
		assert.Zero(t, o.TotalPotential)
		assert.True(t, o.CanReachTM)
	})

	t.Run("above floor", func(t *testing.T) {
		p := farm.DefaultParameters()
		p.HerdSize = 100
		p.FeedQuality = 7

		o := pathway.ReductionOpportunities(p, 300000)
		assert.InDelta(t, 2.0, o.FeedQualityPoints, 1e-12)
		assert.InDelta(t, 9000.0, o.FeedQuality, 1e-6)
		assert.InDelta(t, 45000.0, o.Inhibitor, 1e-6)
		assert.InDelta(t, 30000.0, o.Digester, 1e-6)
		assert.InDelta(t, 84000.0, o.TotalPotential, 1e-6)
		assert.False(t, o.CanReachTM)
	})

	t.Run("everything adopted", func(t *testing.T) {
		p := farm.DefaultParameters()
		p.HerdSize = 100
		p.FeedQuality = 9
		p.MethaneInhibitor = true
		p.ManureSystem = farm.ManureAnaerobicDigester

		o := pathway.ReductionOpportunities(p, 300000)
		assert.Zero(t, o.TotalPotential)
		assert.False(t, o.CanReachTM)
	})
}

func measureIDs(pw pathway.Pathway) []string {
	ids := make([]string, 0, len(pw.Measures))
	for _, m := range pw.Measures {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestCalculateReductionPathway(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 100
	p.FeedQuality = 7
	e := emissions.Breakdown{Total: 3000}

	pw := pathway.CalculateReductionPathway(p, e, 2035, 2026)

	assert.InDelta(t, 300000.0, pw.CurrentEmissions, 1e-6)
	assert.InDelta(t, 100000.0, pw.Gap, 1e-6)
	assert.Equal(t, 9, pw.YearsToTarget)
	assert.Equal(t, 2035, pw.TargetYear)

	// 9k + 45k + 30k = 84k leaves the gap open, precision feeding adds 24k
	// to reach 108k and stops further measures.
	assert.ElementsMatch(t, []string{
		pathway.MeasureFeedQuality,
		pathway.MeasureMethaneInhibitor,
		pathway.MeasureManureDigester,
		pathway.MeasurePrecisionFeeding,
	}, measureIDs(pw))
	assert.InDelta(t, 108000.0, pw.TotalReduction, 1e-6)
	assert.InDelta(t, 100*(100.0+200+150+100), pw.TotalCost, 1e-6)
	assert.True(t, pw.CanReachTarget)

	for i := 1; i < len(pw.Measures); i++ {
		assert.GreaterOrEqual(t, pw.Measures[i-1].ROI, pw.Measures[i].ROI, "sorted by ROI")
	}
	for _, m := range pw.Measures {
		if m.ID == pathway.MeasureFeedQuality {
			assert.Equal(t, "Upgrade feed quality from 7/10 to 9/10", m.Description)
			assert.Equal(t, pathway.Easy, m.Difficulty)
		}
	}
}

func TestCalculateReductionPathwayAdopted(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 100
	p.FeedQuality = 9
	p.MethaneInhibitor = true
	p.ManureSystem = farm.ManureAnaerobicDigester
	p.AgeFirstCalving = 24
	p.CalvingInterval = 390
	e := emissions.Breakdown{Total: 4000}

	pw := pathway.CalculateReductionPathway(p, e, 0, 2026)

	ids := measureIDs(pw)
	assert.NotContains(t, ids, pathway.MeasureMethaneInhibitor)
	assert.NotContains(t, ids, pathway.MeasureFeedQuality)
	assert.NotContains(t, ids, pathway.MeasureManureDigester)
	assert.ElementsMatch(t, []string{
		pathway.MeasurePrecisionFeeding,
		pathway.MeasureImprovedGenetics,
		pathway.MeasureHeatAbatement,
		pathway.MeasureRenewableEnergy,
		pathway.MeasureOptimizedReproduction,
	}, ids)
	assert.Equal(t, pathway.DefaultTargetYear, pw.TargetYear)
	assert.False(t, pw.CanReachTarget)
}

func TestReproductionNeedsFertilityTrigger(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 100
	p.FeedQuality = 9
	p.MethaneInhibitor = true
	p.ManureSystem = farm.ManureAnaerobicDigester
	p.AgeFirstCalving = 21
	p.CalvingInterval = 370

	pw := pathway.CalculateReductionPathway(p, emissions.Breakdown{Total: 4000}, 2035, 2026)
	assert.NotContains(t, measureIDs(pw), pathway.MeasureOptimizedReproduction)
}

func TestCalculateReductionPathwayBelowFloor(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 100
	pw := pathway.CalculateReductionPathway(p, emissions.Breakdown{Total: 1800}, 2035, 2026)

	assert.Negative(t, pw.Gap)
	assert.True(t, pw.CanReachTarget)
	assert.NotContains(t, measureIDs(pw), pathway.MeasurePrecisionFeeding)
}

func TestCalculateReductionPathwayZeroHerd(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 0

	pw := pathway.CalculateReductionPathwayAt(p, emissions.Calculate(p), 2035,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Zero(t, pw.CurrentEmissions)
	for _, m := range pw.Measures {
		assert.Zero(t, m.ROI)
	}
}

func TestTimeline(t *testing.T) {
	pw := pathway.Pathway{
		Gap: 100000,
		Measures: []pathway.Measure{
			{Name: "A", PotentialReduction: 45000, TimeToImplement: 1},
			{Name: "B", PotentialReduction: 24000, TimeToImplement: 24},
			{Name: "C", PotentialReduction: 9000, TimeToImplement: 3},
			{Name: "D", PotentialReduction: 30000, TimeToImplement: 12},
		},
	}

	tl := pathway.Timeline(pw, 2026)
	require.Len(t, tl, 2)

	assert.Equal(t, 2027, tl[0].Year)
	assert.Equal(t, []string{"A", "C", "D"}, tl[0].Measures)
	assert.InDelta(t, 84000.0, tl[0].CumulativeReduction, 1e-9)
	assert.InDelta(t, 16000.0, tl[0].RemainingGap, 1e-9)

	assert.Equal(t, 2028, tl[1].Year)
	assert.InDelta(t, 108000.0, tl[1].CumulativeReduction, 1e-9)
	assert.Zero(t, tl[1].RemainingGap)

	assert.Empty(t, pathway.Timeline(pathway.Pathway{}, 2026))
}

func TestGlidePath(t *testing.T) {
	p := farm.DefaultParameters()
	p.HerdSize = 100
	e := emissions.Breakdown{Total: 3000}
	seq := emissions.Sequestration{Total: 50}

	gp := pathway.Project(p, e, seq, 2026, 0)
	require.Len(t, gp.Years, 10)
	assert.Equal(t, 2026, gp.CurrentYear)
	assert.Equal(t, 2035, gp.TargetYear)

	first := gp.Years[0]
	assert.InDelta(t, 300.0, first.Gross, 1e-9)
	assert.Zero(t, first.Sequestration)
	assert.InDelta(t, 300.0, first.Net, 1e-9)
	assert.InDelta(t, 200.0, first.TheoreticalMinimum, 1e-9)
	assert.InDelta(t, 50.0, first.PercentAboveTM, 1e-9)
	assert.InDelta(t, 3000.0/8500, first.Intensity, 1e-9)

	assert.InDelta(t, 50.0, gp.Years[5].Sequestration, 1e-9)
	assert.InDelta(t, 20.0, gp.Years[2].Sequestration, 1e-9)
	for i := 1; i < len(gp.Years); i++ {
		assert.Less(t, gp.Years[i].Gross, gp.Years[i-1].Gross)
	}
	assert.False(t, gp.CanReachNetZero)
	assert.False(t, gp.CanReachTM)

	big := pathway.Project(p, e, emissions.Sequestration{Total: 1000}, 2026, 5)
	require.Len(t, big.Years, 5)
	assert.True(t, big.CanReachNetZero)
	assert.Zero(t, big.Years[4].Net)
}

func TestCalculateFinancingNeeds(t *testing.T) {
	pw := pathway.Pathway{TotalCost: 100000, TotalReduction: 500000}

	fn := pathway.CalculateFinancingNeeds(pw, 0)
	assert.InDelta(t, 100000.0, fn.TotalInvestment, 1e-9)
	assert.InDelta(t, 10000.0, fn.AnnualSavings, 1e-9)
	assert.InDelta(t, 10.0, fn.PaybackYears, 1e-9)
	assert.InDelta(t, 1012.45*12, fn.AnnualPayment, 1.0)
	assert.InDelta(t, -100000+10000*8.110896, fn.NPV, 0.5)

	empty := pathway.CalculateFinancingNeeds(pathway.Pathway{}, 0.05)
	assert.Zero(t, empty.PaybackYears)
	assert.Zero(t, empty.AnnualPayment)
}
