// Package engine runs the full calculation graph for a farm parameter
// snapshot and memoizes the result by snapshot fingerprint.
//
// The graph is: emissions and sequestration from the parameters; intensity,
// costs, herd KPIs and efficiency metrics from those; the theoretical-minimum
// gap, reduction pathway and financing package downstream of emissions; and
// loan risk from intensity. Every stage is a pure function, so a snapshot's
// results can be cached and shared, and independent snapshots can be
// evaluated in parallel.
package engine

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rshade/herdcarbon/internal/engine/memo"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/logging"
	"github.com/rshade/herdcarbon/internal/pathway"
)

// Common engine errors.
var (
	ErrUnknownFlag = errors.New("unknown feature flag")
)

// Options configures a Calculator. Zero values select the defaults.
type Options struct {
	Flags FeatureFlags
	// MemoSize bounds the memo store; negative disables memoization.
	MemoSize int
	// TheoreticalMinimumPerCow overrides the per-cow floor, kg CO2e/cow/year.
	TheoreticalMinimumPerCow float64
	TargetYear               int
	ProjectionYears          int
	FinancingRate            float64
	CreditScore              int
	ExistingDebt             float64
	// Now supplies the current year for pathway and glide path timing.
	Now func() time.Time
}

// DefaultOptions returns options with every implemented feature enabled.
func DefaultOptions() Options {
	return Options{
		Flags:           DefaultFeatureFlags(),
		MemoSize:        memo.DefaultCapacity,
		TargetYear:      pathway.DefaultTargetYear,
		ProjectionYears: pathway.DefaultProjectionYears,
	}
}

// Calculator evaluates parameter snapshots. It is safe for concurrent use.
type Calculator struct {
	opts  Options
	floor pathway.Floor
	memo  *memo.Store[*Results]
}

// New creates a Calculator.
func New(opts Options) *Calculator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Calculator{
		opts:  opts,
		floor: pathway.Floor(opts.TheoreticalMinimumPerCow),
		memo:  memo.NewStore[*Results](opts.MemoSize),
	}
}

// Flags returns the calculator's feature flags.
func (c *Calculator) Flags() FeatureFlags {
	return c.opts.Flags
}

// Options returns the options the calculator was built with.
func (c *Calculator) Options() Options {
	return c.opts
}

// MemoStats reports memo store counters.
func (c *Calculator) MemoStats() memo.Stats {
	return c.memo.Stats()
}

// ClearMemo drops every memoized result.
func (c *Calculator) ClearMemo() {
	c.memo.Clear()
}

func (c *Calculator) key(p farm.Parameters, year int) string {
	return memo.Key(p.Fingerprint(), c.opts.Flags.Key(), strconv.Itoa(year))
}

// Evaluate runs the calculation graph for p. Identical snapshots evaluated in
// the same calendar year return the same *Results, which callers must not
// modify. The only error is a cancelled context.
func (c *Calculator) Evaluate(ctx context.Context, p farm.Parameters) (*Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "Evaluate").
		Logger()

	year := c.opts.Now().Year()
	key := c.key(p, year)
	start := time.Now()

	res, hit := c.memo.GetOrCompute(key, func() *Results {
		return c.compute(p, year)
	})

	logger.Debug().
		Ctx(ctx).
		Bool("memo_hit", hit).
		Int("herd_size", p.HerdSize).
		Int("validation_issues", len(res.Validation)).
		Dur("elapsed", time.Since(start)).
		Msg("evaluated parameter snapshot")

	return res, nil
}
