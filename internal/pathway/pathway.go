package pathway

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// Difficulty grades how hard a measure is to put in place.
type Difficulty string

// Measure difficulties.
const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Category groups measures by the part of the farm they change.
type Category string

// Measure categories.
const (
	CategoryFeed       Category = "Feed"
	CategoryManure     Category = "Manure"
	CategoryTechnology Category = "Technology"
	CategoryManagement Category = "Management"
)

// Measure identifiers.
const (
	MeasureFeedQuality           = "feed-quality"
	MeasureMethaneInhibitor      = "methane-inhibitor"
	MeasureManureDigester        = "manure-digester"
	MeasurePrecisionFeeding      = "precision-feeding"
	MeasureImprovedGenetics      = "improved-genetics"
	MeasureHeatAbatement         = "heat-abatement"
	MeasureRenewableEnergy       = "renewable-energy"
	MeasureOptimizedReproduction = "optimized-reproduction"
)

// Reduction potentials as a fraction of current farm emissions.
const (
	potentialFeedQuality  = 0.015 // per quality point
	potentialInhibitor    = 0.15
	potentialDigester     = 0.10
	potentialPrecision    = 0.08
	potentialGenetics     = 0.12
	potentialHeat         = 0.05
	potentialRenewable    = 0.03
	potentialReproduction = 0.07
)

// Annual cost per cow in £.
const (
	costFeedQuality  = 50.0 // per quality point
	costInhibitor    = 200.0
	costDigester     = 150.0
	costPrecision    = 100.0
	costGenetics     = 80.0
	costHeat         = 60.0
	costRenewable    = 120.0
	costReproduction = 40.0
)

const (
	targetFeedQuality = 9.0

	// reproductionAFC and reproductionCI trigger the reproduction measure
	// when either is exceeded.
	reproductionAFC = 22.0
	reproductionCI  = 380.0

	// reachTolerance is the share of the gap that counts as reaching target.
	reachTolerance = 0.9

	// DefaultTargetYear is used when no target year is given.
	DefaultTargetYear = 2035
)

// Measure is a candidate intervention.
type Measure struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// PotentialReduction is kg CO2e/year.
	PotentialReduction float64 `json:"potentialReduction"`
	// Cost is £/year for the whole herd.
	Cost       float64    `json:"cost"`
	Difficulty Difficulty `json:"difficulty"`
	// TimeToImplement is in months.
	TimeToImplement int      `json:"timeToImplement"`
	Category        Category `json:"category"`
	// ROI is kg CO2e reduced per £.
	ROI float64 `json:"roi"`
}

// Pathway is the ranked set of measures that closes the gap to the floor.
type Pathway struct {
	CurrentEmissions   float64   `json:"currentEmissions"`
	TheoreticalMinimum float64   `json:"theoreticalMinimum"`
	Gap                float64   `json:"gap"`
	Measures           []Measure `json:"measures"`
	TotalReduction     float64   `json:"totalReduction"`
	TotalCost          float64   `json:"totalCost"`
	CanReachTarget     bool      `json:"canReachTarget"`
	TargetYear         int       `json:"targetYear"`
	YearsToTarget      int       `json:"yearsToTarget"`
}

type measureBuilder struct {
	current    float64
	herd       float64
	gap        float64
	measures   []Measure
	cumulative float64
	cost       float64
}

func (b *measureBuilder) add(m Measure, potential, perCow float64) {
	m.PotentialReduction = b.current * potential
	m.Cost = perCow * b.herd
	m.ROI = safemath.SafeDivide(m.PotentialReduction, m.Cost, 0)
	b.measures = append(b.measures, m)
	b.cumulative += m.PotentialReduction
	b.cost += m.Cost
}

func (b *measureBuilder) short() bool {
	return b.cumulative < b.gap
}

// Pathway builds the reduction pathway for p. Measures the farm has already
// adopted are not proposed; the optional measures after the first three are
// added only while the cumulative reduction is still short of the gap.
func (f Floor) Pathway(p farm.Parameters, e emissions.Breakdown, targetYear, currentYear int) Pathway {
	if targetYear <= 0 {
		targetYear = DefaultTargetYear
	}

	current := CurrentEmissions(e, p.HerdSize)
	tm := f.Minimum(p.HerdSize)
	b := &measureBuilder{current: current, herd: p.Herd(), gap: current - tm}

	if p.FeedQuality < targetFeedQuality {
		points := targetFeedQuality - p.FeedQuality
		b.add(Measure{
			ID:              MeasureFeedQuality,
			Name:            "Improve Feed Quality",
			Description:     fmt.Sprintf("Upgrade feed quality from %g/10 to 9/10", p.FeedQuality),
			Difficulty:      Easy,
			TimeToImplement: 3,
			Category:        CategoryFeed,
		}, potentialFeedQuality*points, costFeedQuality*points)
	}
	if !p.MethaneInhibitor {
		b.add(Measure{
			ID:              MeasureMethaneInhibitor,
			Name:            "Adopt Methane Inhibitors",
			Description:     "Add 3-NOP or similar feed additives to reduce enteric methane",
			Difficulty:      Easy,
			TimeToImplement: 1,
			Category:        CategoryTechnology,
		}, potentialInhibitor, costInhibitor)
	}
	if p.ManureSystem != farm.ManureAnaerobicDigester {
		b.add(Measure{
			ID:              MeasureManureDigester,
			Name:            "Install Anaerobic Digester",
			Description:     "Upgrade manure management to anaerobic digestion with biogas capture",
			Difficulty:      Hard,
			TimeToImplement: 12,
			Category:        CategoryManure,
		}, potentialDigester, costDigester)
	}
	if b.short() {
		b.add(Measure{
			ID:              MeasurePrecisionFeeding,
			Name:            "Implement Precision Feeding",
			Description:     "Individual cow feeding optimization with smart feeders",
			Difficulty:      Medium,
			TimeToImplement: 6,
			Category:        CategoryTechnology,
		}, potentialPrecision, costPrecision)
	}
	if b.short() {
		b.add(Measure{
			ID:              MeasureImprovedGenetics,
			Name:            "Accelerate Genetic Progress",
			Description:     "Select for low-methane genetics and improved feed efficiency",
			Difficulty:      Medium,
			TimeToImplement: 24,
			Category:        CategoryManagement,
		}, potentialGenetics, costGenetics)
	}
	if b.short() {
		b.add(Measure{
			ID:              MeasureHeatAbatement,
			Name:            "Install Heat Abatement",
			Description:     "Cooling systems to reduce heat stress and improve efficiency",
			Difficulty:      Medium,
			TimeToImplement: 3,
			Category:        CategoryTechnology,
		}, potentialHeat, costHeat)
	}
	if b.short() {
		b.add(Measure{
			ID:              MeasureRenewableEnergy,
			Name:            "Switch to Renewable Energy",
			Description:     "Solar panels and renewable energy for farm operations",
			Difficulty:      Hard,
			TimeToImplement: 6,
			Category:        CategoryTechnology,
		}, potentialRenewable, costRenewable)
	}
	if b.short() && (p.AgeFirstCalving > reproductionAFC || p.CalvingInterval > reproductionCI) {
		b.add(Measure{
			ID:              MeasureOptimizedReproduction,
			Name:            "Optimize Reproduction",
			Description:     "Improve fertility management to reduce heifer overhead",
			Difficulty:      Easy,
			TimeToImplement: 12,
			Category:        CategoryManagement,
		}, potentialReproduction, costReproduction)
	}

	sort.SliceStable(b.measures, func(i, j int) bool {
		return b.measures[i].ROI > b.measures[j].ROI
	})

	return Pathway{
		CurrentEmissions:   current,
		TheoreticalMinimum: tm,
		Gap:                b.gap,
		Measures:           b.measures,
		TotalReduction:     b.cumulative,
		TotalCost:          b.cost,
		CanReachTarget:     b.cumulative >= b.gap*reachTolerance,
		TargetYear:         targetYear,
		YearsToTarget:      targetYear - currentYear,
	}
}

// CalculateReductionPathway builds the pathway against the default floor.
// targetYear <= 0 means DefaultTargetYear.
func CalculateReductionPathway(p farm.Parameters, e emissions.Breakdown, targetYear, currentYear int) Pathway {
	return DefaultFloor.Pathway(p, e, targetYear, currentYear)
}

// CalculateReductionPathwayAt takes the current year from now.
func CalculateReductionPathwayAt(p farm.Parameters, e emissions.Breakdown, targetYear int, now time.Time) Pathway {
	return CalculateReductionPathway(p, e, targetYear, now.Year())
}

// TimelineYear is one year of the implementation timeline.
type TimelineYear struct {
	Year                int      `json:"year"`
	Measures            []string `json:"measures"`
	YearReduction       float64  `json:"yearReduction"`
	CumulativeReduction float64  `json:"cumulativeReduction"`
	RemainingGap        float64  `json:"remainingGap"`
}

// ImplementationYear is the calendar year a measure takes effect.
func ImplementationYear(m Measure, currentYear int) int {
	return currentYear + int(math.Ceil(float64(m.TimeToImplement)/12))
}

// Timeline buckets the pathway's measures by implementation year and tracks
// the cumulative reduction and the gap still open after each year.
func Timeline(pw Pathway, currentYear int) []TimelineYear {
	byYear := make(map[int]*TimelineYear)
	var years []int
	for _, m := range pw.Measures {
		y := ImplementationYear(m, currentYear)
		ty, ok := byYear[y]
		if !ok {
			ty = &TimelineYear{Year: y}
			byYear[y] = ty
			years = append(years, y)
		}
		ty.Measures = append(ty.Measures, m.Name)
		ty.YearReduction += m.PotentialReduction
	}
	sort.Ints(years)

	out := make([]TimelineYear, 0, len(years))
	var cumulative float64
	for _, y := range years {
		ty := *byYear[y]
		cumulative += ty.YearReduction
		ty.CumulativeReduction = cumulative
		ty.RemainingGap = math.Max(0, pw.Gap-cumulative)
		out = append(out, ty)
	}
	return out
}
