// Package greenops expresses farm emissions and reductions as everyday
// equivalents, such as miles driven or tree seedlings grown, using EPA
// greenhouse gas equivalency factors.
package greenops

// EquivalencyType names a category of carbon equivalency.
type EquivalencyType string

// Equivalency categories in display order.
const (
	// EquivalencyMilesDriven is miles driven by an average passenger car.
	EquivalencyMilesDriven EquivalencyType = "miles_driven"
	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings EquivalencyType = "tree_seedlings"
	// EquivalencyHomeDays is days of average household electricity use.
	EquivalencyHomeDays EquivalencyType = "home_days"
)

// CarbonInput is a carbon quantity in a named unit.
type CarbonInput struct {
	Value float64 `json:"value"`
	// Unit is one of g, kg, t or lb, optionally suffixed with CO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult is one calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formattedValue"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one carbon quantity.
type EquivalencyOutput struct {
	InputKg float64             `json:"inputKg"`
	Results []EquivalencyResult `json:"results"`
	// DisplayText is the prose line printed under reports.
	DisplayText string `json:"displayText"`
	// CompactText fits in a table cell.
	CompactText string `json:"compactText"`
	IsEmpty     bool   `json:"isEmpty"`
}
