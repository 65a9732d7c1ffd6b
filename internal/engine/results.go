package engine

import (
	"github.com/rshade/herdcarbon/internal/economics"
	"github.com/rshade/herdcarbon/internal/efficiency"
	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/finance"
	"github.com/rshade/herdcarbon/internal/herd"
	"github.com/rshade/herdcarbon/internal/pathway"
)

// RiskAssessment is the loan risk grade for the snapshot's loan.
type RiskAssessment struct {
	Risk         finance.Risk `json:"risk"`
	InterestRate float64      `json:"interestRate"`
}

// LoanAssessment is the repayment view of the snapshot's loan.
type LoanAssessment struct {
	Principal        float64 `json:"principal"`
	TermYears        int     `json:"termYears"`
	InterestRate     float64 `json:"interestRate"`
	MonthlyRepayment float64 `json:"monthlyRepayment"`
	TotalRepaid      float64 `json:"totalRepaid"`
	TotalInterest    float64 `json:"totalInterest"`
}

// Results is everything the engine derives from one snapshot. Sections
// whose feature flag is off are nil. Intensity is kg CO2e/L; farm-level
// emissions are t CO2e/year; Production is thousands of litres per year.
// Parameters holds the sanitized snapshot the formulas consumed; Fingerprint
// and Validation describe the snapshot as given.
type Results struct {
	Parameters  farm.Parameters `json:"parameters"`
	Fingerprint string          `json:"fingerprint"`
	Year        int             `json:"year"`

	Validation              []string `json:"validation,omitempty"`
	SequestrationValidation []string `json:"sequestrationValidation,omitempty"`

	Emissions        *emissions.Breakdown     `json:"emissions,omitempty"`
	Multipliers      *emissions.Multipliers   `json:"multipliers,omitempty"`
	Sequestration    *emissions.Sequestration `json:"sequestration,omitempty"`
	Intensity        float64                  `json:"intensity"`
	FarmEmissions    float64                  `json:"farmEmissions"`
	NetFarmEmissions float64                  `json:"netFarmEmissions"`
	Production       float64                  `json:"production"`

	Costs         economics.Costs           `json:"costs"`
	CostBreakdown []economics.BreakdownItem `json:"costBreakdown"`
	Revenue       float64                   `json:"revenue"`
	Profit        float64                   `json:"profit"`

	Performance herd.Metrics      `json:"performance"`
	Assessment  []herd.Assessment `json:"assessment"`

	LME     *efficiency.LMEResult     `json:"lme,omitempty"`
	NUE     *efficiency.NUEResult     `json:"nue,omitempty"`
	LMEPlus *efficiency.LMEPlusResult `json:"lmePlus,omitempty"`

	Floor          *pathway.FloorAnalysis  `json:"floor,omitempty"`
	Opportunities  *pathway.Opportunities  `json:"opportunities,omitempty"`
	Pathway        *pathway.Pathway        `json:"pathway,omitempty"`
	Timeline       []pathway.TimelineYear  `json:"timeline,omitempty"`
	GlidePath      *pathway.GlidePath      `json:"glidePath,omitempty"`
	FinancingNeeds *pathway.FinancingNeeds `json:"financingNeeds,omitempty"`

	Risk      *RiskAssessment  `json:"risk,omitempty"`
	Loan      *LoanAssessment  `json:"loan,omitempty"`
	Financing *finance.Package `json:"financing,omitempty"`
}

// Valid reports whether the snapshot passed range validation.
func (r *Results) Valid() bool {
	return len(r.Validation) == 0 && len(r.SequestrationValidation) == 0
}

func (c *Calculator) compute(raw farm.Parameters, year int) *Results {
	flags := c.opts.Flags
	p := raw.Sanitized()
	r := &Results{
		Parameters:              p,
		Fingerprint:             raw.Fingerprint(),
		Year:                    year,
		Validation:              raw.Validate(),
		SequestrationValidation: raw.ValidateSequestration(),
	}

	mult := emissions.CalculateMultipliers(p)
	e := emissions.Calculate(p)
	seq := emissions.CalculateSequestration(p, e)

	r.Intensity = emissions.Intensity(e, p.MilkYield)
	r.FarmEmissions = emissions.FarmEmissions(e, p.HerdSize)
	r.NetFarmEmissions = emissions.NetFarmEmissions(r.FarmEmissions, seq)
	r.Production = emissions.FarmProduction(p.MilkYield, p.HerdSize)
	if flags.EmissionsCalculator {
		r.Emissions = &e
		r.Multipliers = &mult
		r.Sequestration = &seq
	}

	r.Costs = economics.Calculate(p)
	r.CostBreakdown = economics.Breakdown(r.Costs)
	r.Revenue = economics.Revenue(p.MilkYield, p.HerdSize)
	r.Profit = economics.Profit(r.Revenue, r.Costs.TotalPerCow, p.HerdSize)

	r.Performance = herd.Calculate(p, r.Intensity, r.Costs.CostPerLitre)
	r.Assessment = herd.Assess(r.Performance, herd.DefaultTargets())

	if flags.LMECalculator {
		lme := efficiency.LME(p, e)
		r.LME = &lme
	}
	if flags.NUECalculator {
		nue := efficiency.NUE(p)
		r.NUE = &nue
	}
	if r.LME != nil && r.NUE != nil {
		plus := efficiency.LMEPlus(r.LME.LME, r.NUE.NUE)
		r.LMEPlus = &plus
	}

	current := pathway.CurrentEmissions(e, p.HerdSize)
	if flags.TheoreticalMinimum {
		fa := c.floor.Analyze(p, e)
		r.Floor = &fa
	}
	if flags.FeedOptimization {
		opp := c.floor.Opportunities(p, current)
		r.Opportunities = &opp
	}

	pw := c.floor.Pathway(p, e, c.opts.TargetYear, year)
	if flags.ReductionPathways {
		needs := pathway.CalculateFinancingNeeds(pw, c.opts.FinancingRate)
		gp := c.floor.GlidePath(p, e, seq, year, c.opts.ProjectionYears)
		r.Pathway = &pw
		r.Timeline = pathway.Timeline(pw, year)
		r.GlidePath = &gp
		r.FinancingNeeds = &needs
	}
	if flags.GreenFinancing {
		pkg := finance.CalculateFinancingPackage(pw, c.opts.CreditScore, c.opts.ExistingDebt).
			WithEligibility(r.Revenue, pw)
		r.Financing = &pkg
	}

	risk := finance.RiskScore(r.Intensity, p.LoanAmount)
	rate := finance.InterestRate(risk, p.LoanAmount)
	if flags.RiskScoring {
		r.Risk = &RiskAssessment{Risk: risk, InterestRate: rate}
	}
	if flags.LoanCalculator {
		monthly := finance.MonthlyRepayment(p.LoanAmount, rate, p.LoanTerm)
		total := finance.TotalRepaid(monthly, p.LoanTerm)
		r.Loan = &LoanAssessment{
			Principal:        p.LoanAmount,
			TermYears:        p.LoanTerm,
			InterestRate:     rate,
			MonthlyRepayment: monthly,
			TotalRepaid:      total,
			TotalInterest:    max(0, total-p.LoanAmount),
		}
	}

	return r
}
