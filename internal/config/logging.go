package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/herdcarbon/internal/logging"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logFileHandle tracks the current log file so it can be closed.
//
//nolint:gochecknoglobals // Tracks the global logger's file handle for proper cleanup
var logFileHandle *os.File

// logMu protects concurrent access to logFileHandle and Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// InitLogger sets the package Logger to the given level, writing to stderr
// and, when logToFile is true, also to the configured log file (or
// DefaultLogPath). An unparsable level means info.
func InitLogger(level string, logToFile bool) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl := logging.ParseLevel(level)
	writers := []io.Writer{consoleWriter()}

	closeLogFileLocked()

	if logToFile {
		if err := EnsureLogDir(); err != nil {
			return err
		}

		logPath := GetGlobalConfig().Logging.File
		if logPath == "" {
			logPath = DefaultLogPath()
			if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
				return err
			}
		}

		logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		logFileHandle = logFile
		writers = append(writers, logFile)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()

	return nil
}

// SetLogLevel changes the level of the package Logger.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	Logger = Logger.Level(logging.ParseLevel(level))
}

// CloseLogFile closes the current log file, if any, and resets Logger to
// console output.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked must be called with logMu held.
func closeLogFileLocked() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil

	Logger = zerolog.New(consoleWriter()).
		Level(Logger.GetLevel()).
		With().
		Timestamp().
		Caller().
		Logger()
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

//nolint:gochecknoinits // The package logger must exist before any configuration is loaded.
func init() {
	_ = InitLogger("info", false)
}

// ToLoggingConfig converts the logging section into a logging.Config. Logs
// go to stderr unless a file is set.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		File:   lc.File,
		Output: os.Stderr,
	}
}

// GetLoggingConfig returns a copy of the global logging section. Callers
// apply flag overrides such as --debug afterwards.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
