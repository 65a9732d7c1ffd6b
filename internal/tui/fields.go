package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/herdcarbon/internal/farm"
)

// ErrInvalidValue is returned when typed input cannot be applied to a field.
var ErrInvalidValue = errors.New("invalid value")

// Field is one editable farm parameter.
type Field struct {
	Key   string
	Label string
	Unit  string
	Step  float64
	Min   float64
	Max   float64
	// Toggle fields hold 0 or 1 and are shown as yes/no.
	Toggle bool

	get func(farm.Parameters) float64
	set func(*farm.Parameters, float64)
}

// Value reads the field from p.
func (f Field) Value(p farm.Parameters) float64 {
	return f.get(p)
}

// Set writes v, clamped to the field's range, into p.
func (f Field) Set(p *farm.Parameters, v float64) {
	f.set(p, math.Max(f.Min, math.Min(f.Max, v)))
}

// Format renders the field's value in p.
func (f Field) Format(p farm.Parameters) string {
	v := f.get(p)
	if f.Toggle {
		if v != 0 {
			return "yes"
		}
		return "no"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Parse reads typed input for the field.
func (f Field) Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if f.Toggle {
		switch strings.ToLower(s) {
		case "yes", "y", "true", "1", "on":
			return 1, nil
		case "no", "n", "false", "0", "off":
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %q is not yes or no", ErrInvalidValue, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	if v < f.Min || v > f.Max {
		return 0, fmt.Errorf("%w: %s must be between %g and %g", ErrInvalidValue, f.Label, f.Min, f.Max)
	}
	return v, nil
}

func floatField(key, label, unit string, step, lo, hi float64, ptr func(*farm.Parameters) *float64) Field {
	return Field{
		Key: key, Label: label, Unit: unit, Step: step, Min: lo, Max: hi,
		get: func(p farm.Parameters) float64 { return *ptr(&p) },
		set: func(p *farm.Parameters, v float64) { *ptr(p) = v },
	}
}

func intField(key, label, unit string, step, lo, hi float64, ptr func(*farm.Parameters) *int) Field {
	return Field{
		Key: key, Label: label, Unit: unit, Step: step, Min: lo, Max: hi,
		get: func(p farm.Parameters) float64 { return float64(*ptr(&p)) },
		set: func(p *farm.Parameters, v float64) { *ptr(p) = int(math.Round(v)) },
	}
}

func boolField(key, label string, ptr func(*farm.Parameters) *bool) Field {
	return Field{
		Key: key, Label: label, Step: 1, Min: 0, Max: 1, Toggle: true,
		get: func(p farm.Parameters) float64 {
			if *ptr(&p) {
				return 1
			}
			return 0
		},
		set: func(p *farm.Parameters, v float64) { *ptr(p) = v >= 0.5 },
	}
}

// Fields lists the parameters the explorer can edit, in display order.
func Fields() []Field {
	return []Field{
		intField("herdSize", "Herd size", "cows", 10, 1, 10000,
			func(p *farm.Parameters) *int { return &p.HerdSize }),
		floatField("milkYield", "Milk yield", "L/cow/yr", 250, 1000, 20000,
			func(p *farm.Parameters) *float64 { return &p.MilkYield }),
		floatField("feedQuality", "Feed quality", "1-10", 0.5, 1, 10,
			func(p *farm.Parameters) *float64 { return &p.FeedQuality }),
		floatField("concentrateFeed", "Concentrate feed", "kg/day", 0.5, 0, 30,
			func(p *farm.Parameters) *float64 { return &p.ConcentrateFeed }),
		floatField("crudeProtein", "Crude protein", "%", 0.5, 12, 22,
			func(p *farm.Parameters) *float64 { return &p.CrudeProtein }),
		floatField("soyaContent", "Soya content", "%", 5, 0, 100,
			func(p *farm.Parameters) *float64 { return &p.SoyaContent }),
		floatField("nitrogenRate", "Nitrogen rate", "kg N/ha/yr", 10, 0, 300,
			func(p *farm.Parameters) *float64 { return &p.NitrogenRate }),
		floatField("avgLactations", "Lactations", "", 0.1, 1, 10,
			func(p *farm.Parameters) *float64 { return &p.AvgLactations }),
		floatField("calvingInterval", "Calving interval", "days", 5, 300, 600,
			func(p *farm.Parameters) *float64 { return &p.CalvingInterval }),
		floatField("ageFirstCalving", "Age first calving", "months", 0.5, 18, 36,
			func(p *farm.Parameters) *float64 { return &p.AgeFirstCalving }),
		floatField("grazingMonths", "Grazing", "months", 1, 0, 12,
			func(p *farm.Parameters) *float64 { return &p.GrazingMonths }),
		floatField("treePlantingHa", "Tree planting", "ha", 1, 0, 1000,
			func(p *farm.Parameters) *float64 { return &p.TreePlantingHa }),
		floatField("hedgerowKm", "Hedgerows", "km", 0.5, 0, 200,
			func(p *farm.Parameters) *float64 { return &p.HedgerowKm }),
		floatField("soilCarbonHa", "Soil carbon", "ha", 5, 0, 5000,
			func(p *farm.Parameters) *float64 { return &p.SoilCarbonHa }),
		floatField("coverCropsHa", "Cover crops", "ha", 5, 0, 5000,
			func(p *farm.Parameters) *float64 { return &p.CoverCropsHa }),
		floatField("renewableEnergyKw", "Renewables", "kW", 10, 0, 5000,
			func(p *farm.Parameters) *float64 { return &p.RenewableEnergyKw }),
		boolField("methaneInhibitor", "Methane inhibitor",
			func(p *farm.Parameters) *bool { return &p.MethaneInhibitor }),
		boolField("improvedManure", "Improved manure",
			func(p *farm.Parameters) *bool { return &p.ImprovedManure }),
		floatField("loanAmount", "Loan amount", "£", 50000, 0, 10_000_000,
			func(p *farm.Parameters) *float64 { return &p.LoanAmount }),
		intField("loanTerm", "Loan term", "years", 1, 1, 30,
			func(p *farm.Parameters) *int { return &p.LoanTerm }),
	}
}
