package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/paths"
)

// Options controls where and how the global logger writes.
type Options struct {
	Verbosity int
	// Console receives human readable output. Defaults to os.Stderr.
	Console io.Writer
	NoColor bool
	// NoFile disables the log file under the XDG state directory.
	NoFile bool
}

var (
	fileMu sync.Mutex
	// logFile is the handle the global logger currently appends to.
	logFile *os.File
)

// Setup configures the global logger from opts. The log file opened by a
// previous call is closed once the new logger is in place.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(levelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	logPath := getLogFilePath()
	var handle *os.File
	var fileErr error
	if !opts.NoFile {
		handle, fileErr = setupLogFile(logPath)
		if fileErr == nil {
			writers = append(writers, handle)
		}
	}

	fileMu.Lock()
	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	previous := logFile
	logFile = handle
	fileMu.Unlock()
	if previous != nil {
		_ = previous.Close()
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logPath).Msg("Failed to create log file, logging to console only")
	}

	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logPath).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath respects XDG_STATE_HOME, falling back to ~/.local/state
func getLogFilePath() string {
	return paths.LogFile()
}

func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to create log directory")
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to open log file")
	}

	return file, nil
}

// LogDuration logs the duration of an operation
func LogDuration(start time.Time, operation string) {
	log.Debug().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
