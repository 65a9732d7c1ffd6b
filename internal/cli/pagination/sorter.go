package pagination

import (
	"sort"
	"strings"

	"github.com/rshade/herdcarbon/internal/pathway"
)

// Measure sort fields.
const (
	FieldROI       = "roi"
	FieldReduction = "reduction"
	FieldCost      = "cost"
	FieldMonths    = "months"
	FieldName      = "name"
)

// MeasureSorter sorts reduction measures by a named field.
type MeasureSorter struct {
	validFields map[string]bool
}

// NewMeasureSorter creates a new MeasureSorter with valid sort fields.
func NewMeasureSorter() *MeasureSorter {
	return &MeasureSorter{
		validFields: map[string]bool{
			FieldROI:       true,
			FieldReduction: true,
			FieldCost:      true,
			FieldMonths:    true,
			FieldName:      true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *MeasureSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *MeasureSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of measures; the input is not modified. An
// invalid field returns the input unchanged. Ties keep pathway order.
func (s *MeasureSorter) Sort(measures []pathway.Measure, field, order string) []pathway.Measure {
	if !s.IsValidField(field) {
		return measures
	}

	sorted := make([]pathway.Measure, len(measures))
	copy(sorted, measures)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if order == SortOrderDesc {
			i, j = j, i
		}

		switch field {
		case FieldROI:
			return sorted[i].ROI < sorted[j].ROI
		case FieldReduction:
			return sorted[i].PotentialReduction < sorted[j].PotentialReduction
		case FieldCost:
			return sorted[i].Cost < sorted[j].Cost
		case FieldMonths:
			return sorted[i].TimeToImplement < sorted[j].TimeToImplement
		case FieldName:
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		default:
			return false
		}
	})

	return sorted
}
