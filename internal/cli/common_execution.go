package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/config"
	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/logging"
)

// ExitError carries a process exit code from a command to main.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return e.Reason
}

// runContext holds common context for logging a command's outcome.
type runContext struct {
	command string
	start   time.Time
}

// newRunContext creates a new run context.
func newRunContext(command string) *runContext {
	return &runContext{
		command: command,
		start:   time.Now(),
	}
}

// logFailure logs a failed command.
func (r *runContext) logFailure(ctx context.Context, err error) {
	logging.FromContext(ctx).Error().Ctx(ctx).
		Err(err).
		Str("command", r.command).
		Dur("duration", time.Since(r.start)).
		Msg("command failed")
}

// logSuccess logs a completed command with the number of snapshots evaluated.
func (r *runContext) logSuccess(ctx context.Context, snapshots int) {
	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("command", r.command).
		Int("snapshots", snapshots).
		Dur("duration", time.Since(r.start)).
		Msg("command completed")
}

// loadParameters returns base overlaid with the --params file, if given.
func loadParameters(cmd *cobra.Command, base farm.Parameters) (farm.Parameters, error) {
	path, _ := cmd.Flags().GetString("params")
	if path == "" {
		return base, nil
	}
	p, err := farm.Load(path, base)
	if err != nil {
		return base, fmt.Errorf("loading parameters: %w", err)
	}
	logging.FromContext(cmd.Context()).Debug().Ctx(cmd.Context()).
		Str("params_path", path).
		Msg("parameters loaded from file")
	return p, nil
}

// newCalculator builds a calculator from the global configuration. mutate,
// when non-nil, adjusts the options from command flags.
func newCalculator(mutate func(*engine.Options)) *engine.Calculator {
	opts := config.GetGlobalConfig().ToEngineOptions()
	if mutate != nil {
		mutate(&opts)
	}
	return engine.New(opts)
}

// evaluate runs one snapshot through calc, logging the outcome.
func evaluate(cmd *cobra.Command, calc *engine.Calculator, p farm.Parameters) (*engine.Results, error) {
	ctx := cmd.Context()
	run := newRunContext(cmd.CommandPath())

	res, err := calc.Evaluate(ctx, p)
	if err != nil {
		run.logFailure(ctx, err)
		return nil, fmt.Errorf("evaluating parameters: %w", err)
	}
	run.logSuccess(ctx, 1)
	return res, nil
}

// styledOutput reports whether cmd writes to an interactive terminal.
func styledOutput(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
