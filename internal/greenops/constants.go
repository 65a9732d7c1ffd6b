package greenops

// EPA greenhouse gas equivalency factors, kg CO2e per unit of activity.
// The equivalency is kg CO2e divided by the factor.
const (
	// EPAMilesDrivenFactor is kg CO2e per mile of an average passenger car.
	EPAMilesDrivenFactor = 0.192

	// EPATreeSeedlingFactor is kg CO2e taken up by one urban tree seedling
	// grown for 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average household electricity.
	EPAHomeDayFactor = 18.3
)

// Unit conversions to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest quantity given equivalents.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
