package report

// Section names used in flat metric listings.
const (
	SectionSummary            = "summary"
	SectionEmissions          = "emissions"
	SectionSequestration      = "sequestration"
	SectionPerformance        = "performance"
	SectionEfficiency         = "efficiency"
	SectionTheoreticalMinimum = "theoreticalMinimum"
	SectionReductionPathway   = "reductionPathway"
	SectionFinancing          = "financing"
	SectionRisk               = "risk"
)

// Metric is one labelled value.
type Metric struct {
	Section string
	Name    string
	Value   float64
	Unit    string
}

type metricList []Metric

func (l *metricList) add(section, name string, v float64, unit string) {
	*l = append(*l, Metric{Section: section, Name: name, Value: v, Unit: unit})
}

// Metrics flattens the export into labelled values in section order.
// Sections absent from the export are skipped.
func (e Export) Metrics() []Metric {
	var l metricList

	s := e.Summary
	l.add(SectionSummary, "Emissions intensity", s.Intensity, "kg CO2e/L")
	l.add(SectionSummary, "Farm emissions", s.FarmEmissions, "t CO2e/year")
	l.add(SectionSummary, "Net farm emissions", s.NetFarmEmissions, "t CO2e/year")
	l.add(SectionSummary, "Milk production", s.Production, "thousand L/year")
	l.add(SectionSummary, "Revenue", s.Revenue, "£")
	l.add(SectionSummary, "Profit", s.Profit, "£")
	l.add(SectionSummary, "Cost per litre", s.CostPerLitre, "£/L")

	if em := e.Emissions; em != nil {
		const u = "kg CO2e/cow/year"
		l.add(SectionEmissions, "Enteric", em.Enteric, u)
		l.add(SectionEmissions, "Manure", em.Manure, u)
		l.add(SectionEmissions, "Feed", em.Feed, u)
		l.add(SectionEmissions, "Deforestation", em.Deforestation, u)
		l.add(SectionEmissions, "Nitrogen", em.Nitrogen, u)
		l.add(SectionEmissions, "Total", em.Total, u)
	}

	if sq := e.Sequestration; sq != nil {
		const u = "t CO2e/year"
		l.add(SectionSequestration, "Trees", sq.Trees, u)
		l.add(SectionSequestration, "Hedgerows", sq.Hedgerows, u)
		l.add(SectionSequestration, "Soil carbon", sq.Soil, u)
		l.add(SectionSequestration, "Cover crops", sq.CoverCrops, u)
		l.add(SectionSequestration, "Renewable energy", sq.Renewable, u)
		l.add(SectionSequestration, "Methane inhibitor", sq.MethaneInhibitorReduction, u)
		l.add(SectionSequestration, "Improved manure", sq.ImprovedManureReduction, u)
		l.add(SectionSequestration, "Total", sq.Total, u)
	}

	pf := e.Performance
	l.add(SectionPerformance, "Feed efficiency", pf.FeedEfficiency, "L/kg")
	l.add(SectionPerformance, "Protein efficiency", pf.ProteinEfficiency, "%")
	l.add(SectionPerformance, "Nitrogen efficiency", pf.NitrogenEfficiency, "%")
	l.add(SectionPerformance, "Overall herd effectiveness", pf.OverallHerdEffectiveness, "%")
	l.add(SectionPerformance, "Retention rate", pf.RetentionRate, "%")
	l.add(SectionPerformance, "Replacement rate", pf.ReplacementRate, "%")

	if lme := e.Efficiency.LME; lme != nil {
		l.add(SectionEfficiency, "Lifetime methane efficiency", lme.LME, "L/t CO2e")
	}
	if nue := e.Efficiency.NUE; nue != nil {
		l.add(SectionEfficiency, "Nitrogen use efficiency", nue.NUE, "%")
	}
	if plus := e.Efficiency.LMEPlus; plus != nil {
		l.add(SectionEfficiency, "LME+NUE score", plus.Score, "/100")
	}

	if tm := e.TheoreticalMinimum; tm != nil {
		const u = "kg CO2e/year"
		l.add(SectionTheoreticalMinimum, "Current emissions", tm.CurrentEmissions, u)
		l.add(SectionTheoreticalMinimum, "Theoretical minimum", tm.TheoreticalMinimum, u)
		l.add(SectionTheoreticalMinimum, "Gap", tm.Gap, u)
		l.add(SectionTheoreticalMinimum, "Above minimum", tm.PercentageAbove, "%")
	}

	if pw := e.ReductionPathway; pw != nil {
		for _, m := range pw.Measures {
			l.add(SectionReductionPathway, m.Name+" reduction", m.PotentialReduction, "kg CO2e/year")
			l.add(SectionReductionPathway, m.Name+" cost", m.Cost, "£/year")
			l.add(SectionReductionPathway, m.Name+" ROI", m.ROI, "kg CO2e/£")
		}
		l.add(SectionReductionPathway, "Total reduction", pw.TotalReduction, "kg CO2e/year")
		l.add(SectionReductionPathway, "Total cost", pw.TotalCost, "£/year")
	}

	if f := e.Financing; f != nil {
		l.add(SectionFinancing, "Total investment", f.TotalInvestment, "£")
		l.add(SectionFinancing, "Total financed", f.TotalFinanced, "£")
		l.add(SectionFinancing, "Weighted rate", f.WeightedRate*100, "%")
		l.add(SectionFinancing, "Monthly payment", f.MonthlyPayment, "£")
		l.add(SectionFinancing, "Total financing cost", f.TotalFinancingCost, "£")
		l.add(SectionFinancing, "Carbon benefit", f.TotalCarbonBenefit, "kg CO2e/year")
		l.add(SectionFinancing, "Payback", f.PaybackMonths, "months")
		l.add(SectionFinancing, "NPV", f.NPV, "£")
		l.add(SectionFinancing, "IRR", f.IRR*100, "%")
		l.add(SectionFinancing, "Carbon cost effectiveness", f.CarbonCostEffectiveness, "£/kg CO2e")
	}

	if r := e.Risk; r != nil {
		l.add(SectionRisk, "Interest rate", r.InterestRate*100, "%")
	}
	if ln := e.Loan; ln != nil {
		l.add(SectionRisk, "Loan amount", ln.Principal, "£")
		l.add(SectionRisk, "Monthly repayment", ln.MonthlyRepayment, "£")
		l.add(SectionRisk, "Total repaid", ln.TotalRepaid, "£")
	}

	return l
}
