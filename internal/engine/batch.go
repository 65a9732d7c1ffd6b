package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/logging"
)

// EvaluateBatch evaluates independent snapshots concurrently, at most limit
// at a time (runtime.NumCPU() when limit < 1). Results are in input order.
// The first error cancels the remaining evaluations.
func (c *Calculator) EvaluateBatch(
	ctx context.Context, snapshots []farm.Parameters, limit int,
) ([]*Results, error) {
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "EvaluateBatch").
		Logger()

	out := make([]*Results, len(snapshots))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range snapshots {
		g.Go(func() error {
			res, err := c.Evaluate(gCtx, p)
			if err != nil {
				return fmt.Errorf("snapshot %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().
		Ctx(ctx).
		Int("snapshots", len(snapshots)).
		Int("limit", limit).
		Msg("batch evaluated")
	return out, nil
}
