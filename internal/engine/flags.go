package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Feature flag names as they appear in configuration and environment
// variables.
const (
	FlagEmissionsCalculator = "EMISSIONS_CALCULATOR"
	FlagLMECalculator       = "LME_CALCULATOR"
	FlagRiskScoring         = "RISK_SCORING"
	FlagLoanCalculator      = "LOAN_CALCULATOR"
	FlagNUECalculator       = "NUE_CALCULATOR"
	FlagFeedOptimization    = "FEED_OPTIMIZATION"
	FlagTheoreticalMinimum  = "THEORETICAL_MINIMUM"
	FlagReductionPathways   = "REDUCTION_PATHWAYS"
	FlagGreenFinancing      = "GREEN_FINANCING"
	FlagScenarioFinancing   = "SCENARIO_FINANCING"
	FlagCarbonMarketplace   = "CARBON_MARKETPLACE"
	FlagPeerBenchmarking    = "PEER_BENCHMARKING"
	FlagMLPredictions       = "ML_PREDICTIONS"
)

// FeatureFlags switches result sections on and off. It is a plain value;
// copies never affect each other.
type FeatureFlags struct {
	EmissionsCalculator bool `yaml:"emissions_calculator" json:"emissionsCalculator"`
	LMECalculator       bool `yaml:"lme_calculator" json:"lmeCalculator"`
	RiskScoring         bool `yaml:"risk_scoring" json:"riskScoring"`
	LoanCalculator      bool `yaml:"loan_calculator" json:"loanCalculator"`
	NUECalculator       bool `yaml:"nue_calculator" json:"nueCalculator"`
	FeedOptimization    bool `yaml:"feed_optimization" json:"feedOptimization"`
	TheoreticalMinimum  bool `yaml:"theoretical_minimum" json:"theoreticalMinimum"`
	ReductionPathways   bool `yaml:"reduction_pathways" json:"reductionPathways"`
	GreenFinancing      bool `yaml:"green_financing" json:"greenFinancing"`
	ScenarioFinancing   bool `yaml:"scenario_financing" json:"scenarioFinancing"`
	CarbonMarketplace   bool `yaml:"carbon_marketplace" json:"carbonMarketplace"`
	PeerBenchmarking    bool `yaml:"peer_benchmarking" json:"peerBenchmarking"`
	MLPredictions       bool `yaml:"ml_predictions" json:"mlPredictions"`
}

// DefaultFeatureFlags enables every implemented feature.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{
		EmissionsCalculator: true,
		LMECalculator:       true,
		RiskScoring:         true,
		LoanCalculator:      true,
		NUECalculator:       true,
		FeedOptimization:    true,
		TheoreticalMinimum:  true,
		ReductionPathways:   true,
		GreenFinancing:      true,
		ScenarioFinancing:   true,
	}
}

func (f *FeatureFlags) fields() map[string]*bool {
	return map[string]*bool{
		FlagEmissionsCalculator: &f.EmissionsCalculator,
		FlagLMECalculator:       &f.LMECalculator,
		FlagRiskScoring:         &f.RiskScoring,
		FlagLoanCalculator:      &f.LoanCalculator,
		FlagNUECalculator:       &f.NUECalculator,
		FlagFeedOptimization:    &f.FeedOptimization,
		FlagTheoreticalMinimum:  &f.TheoreticalMinimum,
		FlagReductionPathways:   &f.ReductionPathways,
		FlagGreenFinancing:      &f.GreenFinancing,
		FlagScenarioFinancing:   &f.ScenarioFinancing,
		FlagCarbonMarketplace:   &f.CarbonMarketplace,
		FlagPeerBenchmarking:    &f.PeerBenchmarking,
		FlagMLPredictions:       &f.MLPredictions,
	}
}

// Enabled reports the named flag. Unknown names are disabled.
func (f FeatureFlags) Enabled(name string) bool {
	v, ok := f.fields()[strings.ToUpper(name)]
	return ok && *v
}

// With returns a copy with the named flag set.
func (f FeatureFlags) With(name string, on bool) (FeatureFlags, error) {
	v, ok := f.fields()[strings.ToUpper(name)]
	if !ok {
		return f, fmt.Errorf("%w: %s", ErrUnknownFlag, name)
	}
	*v = on
	return f, nil
}

// Names lists every flag name in sorted order.
func (f FeatureFlags) Names() []string {
	names := make([]string, 0, 13)
	for n := range f.fields() {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Key is a stable string form of the flag set.
func (f FeatureFlags) Key() string {
	var b strings.Builder
	for _, n := range f.Names() {
		if f.Enabled(n) {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	return b.String()
}
