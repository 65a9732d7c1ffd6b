package finance

import (
	"github.com/rshade/herdcarbon/internal/pathway"
)

// OptionType is the kind of financing product.
type OptionType string

// Financing product kinds.
const (
	TypeLoan         OptionType = "loan"
	TypeGrant        OptionType = "grant"
	TypeSubsidy      OptionType = "subsidy"
	TypeCarbonCredit OptionType = "carbon-credit"
	TypeBlended      OptionType = "blended"
)

// Catalog entry identifiers.
const (
	OptionGreenLoan        = "green-loan"
	OptionEquipmentFinance = "equipment-finance"
	OptionGovtGrant        = "govt-grant"
	OptionCarbonAdvance    = "carbon-advance"
	OptionBlendedFinance   = "blended-finance"
)

// Option is a financing product. Catalog entries are reference data.
type Option struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          OptionType `json:"type"`
	MaxAmount     float64    `json:"maxAmount"`
	InterestRate  float64    `json:"interestRate"`
	TermYears     int        `json:"termYears"`
	Requirements  []string   `json:"requirements"`
	GreenDiscount float64    `json:"greenDiscount"`
	Description   string     `json:"description"`
}

// EffectiveRate is the interest rate after the green discount, never below zero.
func (o Option) EffectiveRate() float64 {
	return max(0, o.InterestRate-o.GreenDiscount)
}

// Catalog returns a fresh copy of the five financing products.
func Catalog() []Option {
	return []Option{
		{
			ID:            OptionGreenLoan,
			Name:          "Green Agriculture Loan",
			Type:          TypeLoan,
			MaxAmount:     1_000_000,
			InterestRate:  0.035,
			TermYears:     10,
			Requirements:  []string{"Environmental impact assessment", "Emissions reduction plan"},
			GreenDiscount: 0.015,
			Description:   "Low-interest loan for environmental improvements",
		},
		{
			ID:            OptionEquipmentFinance,
			Name:          "Sustainable Equipment Finance",
			Type:          TypeLoan,
			MaxAmount:     500_000,
			InterestRate:  0.045,
			TermYears:     7,
			Requirements:  []string{"Equipment must reduce emissions by >10%"},
			GreenDiscount: 0.01,
			Description:   "Asset finance for green technology",
		},
		{
			ID:           OptionGovtGrant,
			Name:         "Government Sustainability Grant",
			Type:         TypeGrant,
			MaxAmount:    100_000,
			Requirements: []string{"Must implement methane reduction", "Monitoring required"},
			Description:  "Non-repayable grant for proven technologies",
		},
		{
			ID:           OptionCarbonAdvance,
			Name:         "Carbon Credit Advance",
			Type:         TypeCarbonCredit,
			MaxAmount:    200_000,
			InterestRate: 0.06,
			TermYears:    5,
			Requirements: []string{"Verified baseline emissions", "Credit generation plan"},
			Description:  "Upfront payment against future carbon credits",
		},
		{
			ID:            OptionBlendedFinance,
			Name:          "Blended Finance Package",
			Type:          TypeBlended,
			MaxAmount:     750_000,
			InterestRate:  0.025,
			TermYears:     8,
			Requirements:  []string{"Large-scale project", "Multiple environmental benefits"},
			GreenDiscount: 0.02,
			Description:   "Combined loan and grant funding",
		},
	}
}

// LookupOption finds a catalog entry by ID.
func LookupOption(id string) (Option, bool) {
	for _, o := range Catalog() {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

const (
	equipmentCostAbove = 50_000.0
	quickMonthsMax     = 6
	blendedCostAbove   = 200_000.0
)

// MatchOption picks the best-fit product for a measure. Rules are checked in
// order: methane inhibitors are grant funded, costly technology goes to
// equipment finance, quick easy wins to a carbon advance, large projects to
// blended finance, and everything else to the green loan.
func MatchOption(m pathway.Measure) Option {
	id := OptionGreenLoan
	switch {
	case m.ID == pathway.MeasureMethaneInhibitor:
		id = OptionGovtGrant
	case m.Category == pathway.CategoryTechnology && m.Cost > equipmentCostAbove:
		id = OptionEquipmentFinance
	case m.Difficulty == pathway.Easy && m.TimeToImplement <= quickMonthsMax:
		id = OptionCarbonAdvance
	case m.Cost > blendedCostAbove:
		id = OptionBlendedFinance
	}
	o, _ := LookupOption(id)
	return o
}
