// Package logging configures the zerolog logger shared by every compinst
// package. Diagnostic output for the user goes through types.IO; this is
// the developer-facing log, on stderr and in a log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileEnv overrides the log file location. "-" disables the file.
const LogFileEnv = "COMPINST_LOG_FILE"

// Options configures Setup
type Options struct {
	// Verbosity maps to a level: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int
	// Console receives human-readable lines. Defaults to stderr.
	Console io.Writer
	// NoColor disables ANSI colors on the console
	NoColor bool
	// File is the log file path. Empty uses LogFilePath().
	File string
}

// Level returns the zerolog level for a -v count
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger for a verbosity with the
// default console and log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup configures the global logger. Lines go to the console and, when it
// can be opened, to the log file as JSON.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	path := opts.File
	if path == "" {
		path = LogFilePath()
	}
	var fileErr error
	if path != "-" {
		var f *os.File
		f, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, f)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
}

// GetLogger returns a logger tagged with a component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns where the log file lives: $COMPINST_LOG_FILE, else
// compinst/compinst.log under the XDG state directory
func LogFilePath() string {
	if p := os.Getenv(LogFileEnv); p != "" {
		return p
	}
	// xdg caches its directories at init; honor a state home set later
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	return filepath.Join(stateHome, "compinst", "compinst.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
