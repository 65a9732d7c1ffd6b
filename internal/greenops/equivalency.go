package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Calculate converts input to kilograms and computes its equivalents.
// Quantities under MinEquivalencyThresholdKg return an empty output and no
// error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	trees := kg / EPATreeSeedlingFactor
	homeDays := kg / EPAHomeDayFactor

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: FormatLarge(miles), Label: "miles driven"},
		{Type: EquivalencyTreeSeedlings, Value: trees, FormattedValue: FormatLarge(trees), Label: "tree seedlings grown for 10 years"},
		{Type: EquivalencyHomeDays, Value: homeDays, FormattedValue: FormatLarge(homeDays), Label: "days of household electricity"},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles, or the carbon taken up by ~%s tree seedlings over 10 years",
			results[0].FormattedValue, results[1].FormattedValue),
		CompactText: fmt.Sprintf("(≈ %s mi, %s trees)", results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

// FromTonnes returns the equivalents of t tonnes CO2e. Negative, NaN and
// sub-threshold quantities give an empty output.
func FromTonnes(t float64) EquivalencyOutput {
	out, err := Calculate(CarbonInput{Value: t, Unit: "t"})
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

// FromKg returns the equivalents of kg kilograms CO2e, like FromTonnes.
func FromKg(kg float64) EquivalencyOutput {
	out, err := Calculate(CarbonInput{Value: kg, Unit: "kg"})
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

// FormatLarge formats a count with thousand separators, abbreviating
// millions and billions as "~1.5 million".
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return printer.Sprintf("%d", int64(math.Round(n)))
	}
}
