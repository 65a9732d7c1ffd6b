package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/config"
	"github.com/rshade/herdcarbon/internal/logging"
)

// logSession is the logger state for one command invocation.
type logSession struct {
	result  logging.LogPathResult
	started time.Time
}

// setupLogging builds the command logger from config, env and --debug, then
// stores it with a trace id on the command context. --debug always logs to
// the console so calculation traces are visible next to the output.
func setupLogging(cmd *cobra.Command) *logSession {
	cfg := config.GetLoggingConfig()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Level = "debug"
		cfg.Format = logging.FormatConsole
		cfg.File = ""
	}

	stderr := cmd.ErrOrStderr()
	if cfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: could not create log directory: %v\n", err)
		}
	}

	session := &logSession{
		result:  logging.NewLoggerWithPath(cfg.ToLoggingConfig()),
		started: time.Now(),
	}
	switch {
	case session.result.UsingFile:
		logging.PrintLogPathMessage(stderr, session.result.FilePath)
	case session.result.FallbackUsed:
		logging.PrintFallbackWarning(stderr, session.result.FallbackReason)
	}

	logger = logging.ComponentLogger(session.result.Logger, "cli")
	ctx := logging.ContextWithTraceID(cmd.Context(), logging.GetOrGenerateTraceID(cmd.Context()))
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	params, _ := cmd.Flags().GetString("params")
	memoSize, _ := cmd.Flags().GetInt("memo-size")
	logger.Info().Ctx(ctx).
		Str("command", cmd.CommandPath()).
		Str("params_file", params).
		Int("memo_size", memoSize).
		Msg("command started")

	return session
}

// cleanupLogging records the command duration and closes the log file.
func cleanupLogging(cmd *cobra.Command, session *logSession) error {
	if session == nil {
		return nil
	}
	logger.Debug().Ctx(cmd.Context()).
		Str("command", cmd.CommandPath()).
		Dur("duration", time.Since(session.started)).
		Msg("command finished")
	return session.result.Close()
}
