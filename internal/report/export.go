// Package report turns engine results into exportable documents: JSON for
// machines, CSV for spreadsheets, and Markdown, HTML or plain text for
// people. Values keep full precision until rendering.
package report

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/herdcarbon/internal/efficiency"
	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/finance"
	"github.com/rshade/herdcarbon/internal/greenops"
	"github.com/rshade/herdcarbon/internal/herd"
	"github.com/rshade/herdcarbon/internal/pathway"
)

// SchemaVersion is the export document version written by this package.
const SchemaVersion = "1.0.0"

// compatibleSchemas is the range ReadJSON accepts.
const compatibleSchemas = "^1"

// Common report errors.
var (
	ErrInvalidSchema      = errors.New("invalid export schema version")
	ErrIncompatibleSchema = errors.New("incompatible export schema version")
	ErrUnknownFormat      = errors.New("unknown output format")
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatCSV, FormatMarkdown, FormatHTML}
}

// Meta describes who produced an export.
type Meta struct {
	FarmName  string `json:"farmName,omitempty"`
	Generator string `json:"generator"`
	Version   string `json:"version"`
}

// Summary is the headline farm-level figures.
type Summary struct {
	Intensity        float64 `json:"intensity"`
	FarmEmissions    float64 `json:"farmEmissions"`
	NetFarmEmissions float64 `json:"netFarmEmissions"`
	Production       float64 `json:"production"`
	Revenue          float64 `json:"revenue"`
	Profit           float64 `json:"profit"`
	CostPerLitre     float64 `json:"costPerLitre"`
}

// Efficiency groups the lifetime and nitrogen efficiency metrics.
type Efficiency struct {
	LME     *efficiency.LMEResult     `json:"lme,omitempty"`
	NUE     *efficiency.NUEResult     `json:"nue,omitempty"`
	LMEPlus *efficiency.LMEPlusResult `json:"lmePlus,omitempty"`
}

// Export is the serializable report document.
type Export struct {
	ID            string    `json:"id"`
	SchemaVersion string    `json:"schemaVersion"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Meta          Meta      `json:"meta"`

	Parameters farm.Parameters `json:"parameters"`
	Validation []string        `json:"validation,omitempty"`

	Summary            Summary                     `json:"summary"`
	Equivalents        *greenops.EquivalencyOutput `json:"equivalents,omitempty"`
	Emissions          *emissions.Breakdown        `json:"emissions,omitempty"`
	Sequestration      *emissions.Sequestration    `json:"sequestration,omitempty"`
	Performance        herd.Metrics                `json:"performance"`
	Efficiency         Efficiency                  `json:"efficiency"`
	TheoreticalMinimum *pathway.FloorAnalysis      `json:"theoreticalMinimum,omitempty"`
	ReductionPathway   *pathway.Pathway            `json:"reductionPathway,omitempty"`
	Timeline           []pathway.TimelineYear      `json:"timeline,omitempty"`
	Financing          *finance.Package            `json:"financing,omitempty"`
	Risk               *engine.RiskAssessment      `json:"risk,omitempty"`
	Loan               *engine.LoanAssessment      `json:"loan,omitempty"`
}

// NewID returns a fresh export ID.
func NewID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}

// Build assembles an export from one evaluation.
func Build(r *engine.Results, meta Meta, now time.Time) Export {
	exp := Export{
		ID:            NewID(now),
		SchemaVersion: SchemaVersion,
		GeneratedAt:   now.UTC(),
		Meta:          meta,
		Parameters:    r.Parameters,
		Validation:    slices.Concat(r.Validation, r.SequestrationValidation),
		Summary: Summary{
			Intensity:        r.Intensity,
			FarmEmissions:    r.FarmEmissions,
			NetFarmEmissions: r.NetFarmEmissions,
			Production:       r.Production,
			Revenue:          r.Revenue,
			Profit:           r.Profit,
			CostPerLitre:     r.Costs.CostPerLitre,
		},
		Emissions:          r.Emissions,
		Sequestration:      r.Sequestration,
		Performance:        r.Performance,
		Efficiency:         Efficiency{LME: r.LME, NUE: r.NUE, LMEPlus: r.LMEPlus},
		TheoreticalMinimum: r.Floor,
		ReductionPathway:   r.Pathway,
		Timeline:           r.Timeline,
		Financing:          r.Financing,
		Risk:               r.Risk,
		Loan:               r.Loan,
	}
	if eq := greenops.FromTonnes(r.FarmEmissions); !eq.IsEmpty {
		exp.Equivalents = &eq
	}
	return exp
}

// WriteJSON writes exp as indented JSON.
func WriteJSON(w io.Writer, exp Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exp); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// ReadJSON decodes an export and checks its schema version is compatible.
func ReadJSON(r io.Reader) (Export, error) {
	var exp Export
	if err := json.NewDecoder(r).Decode(&exp); err != nil {
		return Export{}, fmt.Errorf("decoding export: %w", err)
	}
	if err := CheckSchema(exp.SchemaVersion); err != nil {
		return Export{}, err
	}
	return exp, nil
}

// CheckSchema reports whether version can be read by this package.
func CheckSchema(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSchema, version)
	}
	c, err := semver.NewConstraint(compatibleSchemas)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s (want %s)", ErrIncompatibleSchema, version, compatibleSchemas)
	}
	return nil
}
