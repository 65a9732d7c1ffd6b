package farm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rshade/herdcarbon/internal/safemath"
)

// Parameter errors.
var (
	ErrInvalidHousingSystem = errors.New("invalid housing system")
	ErrUnknownParameter     = errors.New("unknown parameter")
	ErrUnsupportedFormat    = errors.New("unsupported parameter file format")
)

// rangeMessages maps a Parameters field to the message reported when it is
// outside its validate tag range. The slice order is the reporting order.
// value exposes the field so NaN and ±Inf, which satisfy no comparison, are
// reported explicitly.
//
//nolint:gochecknoglobals // Static lookup table.
var rangeMessages = []struct {
	field   string
	message string
	value   func(Parameters) float64
}{
	{"HerdSize", "Herd size must be between 1 and 10,000", func(p Parameters) float64 { return float64(p.HerdSize) }},
	{"MilkYield", "Milk yield must be between 1,000 and 20,000 L/cow/year", func(p Parameters) float64 { return p.MilkYield }},
	{"FeedQuality", "Feed quality must be between 1 and 10", func(p Parameters) float64 { return p.FeedQuality }},
	{"AgeFirstCalving", "Age at first calving must be between 18 and 36 months", func(p Parameters) float64 { return p.AgeFirstCalving }},
	{"CalvingInterval", "Calving interval must be between 300 and 600 days", func(p Parameters) float64 { return p.CalvingInterval }},
	{"AvgLactations", "Average lactations must be between 1 and 10", func(p Parameters) float64 { return p.AvgLactations }},
	{"ConcentrateFeed", "Concentrate feed must be between 0 and 30 kg/day", func(p Parameters) float64 { return p.ConcentrateFeed }},
	{"SoyaContent", "Soya content must be between 0 and 100%", func(p Parameters) float64 { return p.SoyaContent }},
	{"CrudeProtein", "Crude protein must be between 12 and 22%", func(p Parameters) float64 { return p.CrudeProtein }},
	{"NitrogenRate", "Nitrogen rate must be between 0 and 300 kg N/Ha/Year", func(p Parameters) float64 { return p.NitrogenRate }},
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks every ranged field and returns one human-readable message
// per violation. An empty result means the parameters are within range.
// Validation never blocks calculation; callers decide whether to warn.
func (p Parameters) Validate() []string {
	failed := make(map[string]bool, len(rangeMessages))
	for _, rm := range rangeMessages {
		if !safemath.IsFinite(rm.value(p)) {
			failed[rm.field] = true
		}
	}

	if err := structValidator().Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []string{fmt.Sprintf("parameter validation failed: %v", err)}
		}
		for _, fe := range fieldErrs {
			failed[fe.StructField()] = true
		}
	}

	var messages []string
	for _, rm := range rangeMessages {
		if failed[rm.field] {
			messages = append(messages, rm.message)
		}
	}
	return messages
}

// ValidateSequestration reports negative land-use and technology inputs.
func (p Parameters) ValidateSequestration() []string {
	checks := []struct {
		value float64
		label string
	}{
		{p.TreePlantingHa, "Tree planting area"},
		{p.HedgerowKm, "Hedgerow length"},
		{p.SoilCarbonHa, "Soil carbon area"},
		{p.CoverCropsHa, "Cover crops area"},
		{p.RenewableEnergyKw, "Renewable energy capacity"},
	}

	var messages []string
	for _, c := range checks {
		if c.value < 0 {
			messages = append(messages, c.label+" cannot be negative")
		}
	}
	return messages
}
