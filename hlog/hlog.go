package hlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/kardianos/service"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "shellydeck.log"

var Logger logr.Logger = logr.Discard()

// LogToStderr is true when SHELLYDECK_LOG=stderr, typically from a debugger
// launch configuration.
func LogToStderr() bool {
	return os.Getenv("SHELLYDECK_LOG") == "stderr"
}

// Init initializes logging for interactive commands: errors only unless
// verbose or debug is set.
func Init(verbose bool, debug bool) {
	setup(verbose, debug, false)
}

// InitForPlugin initializes logging for the process launched by the Stream
// Deck application. It has no terminal, so logs go to the rotating file at
// info level.
func InitForPlugin(verbose bool, debug bool) {
	setup(verbose, debug, true)
}

func setup(verbose bool, debug bool, plugin bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	defaultLevel := zerolog.ErrorLevel
	if plugin {
		defaultLevel = zerolog.InfoLevel
	}
	level := parseLogLevel(verbose, debug, defaultLevel)
	zerolog.SetGlobalLevel(level)

	w, console := output(plugin)
	zl := zerolog.New(w)
	if console {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !colored(),
			TimeFormat: time.RFC3339,
		})
	}
	zl = zl.Level(level).With().Timestamp().Caller().Logger()

	Logger = zerologr.New(&zl)
	Logger.V(1).Info("Logging initialized", "level", level.String(), "plugin", plugin)
}

// output picks the log destination. The plugin process always logs to the
// rotating file; commands log to the terminal when there is one.
func output(plugin bool) (io.Writer, bool) {
	if LogToStderr() {
		return os.Stderr, IsTerminal()
	}
	if !plugin && service.Interactive() && IsTerminal() {
		return os.Stderr, true
	}
	w, err := rotatingFile()
	if err != nil {
		debugInit(fmt.Sprintf("logging to stderr: %v", err))
		return os.Stderr, false
	}
	return w, false
}

func rotatingFile() (io.Writer, error) {
	dir := getLogDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    2, // megabytes
		MaxBackups: 5,
		MaxAge:     7, // days
		Compress:   true,
	}, nil
}

// parseLogLevel: --debug shows V(1) logs, --verbose shows info.
func parseLogLevel(verbose bool, debug bool, defaultLevel zerolog.Level) zerolog.Level {
	switch {
	case debug, os.Getenv("DELVE_DEBUGGER") != "":
		return zerolog.DebugLevel
	case verbose:
		return zerolog.InfoLevel
	default:
		return defaultLevel
	}
}

// colored honours NO_COLOR and dumb terminals.
func colored() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// GetLogger returns a logger named after the given package
func GetLogger(packageName string) logr.Logger {
	return Logger.WithName(packageName)
}

// IsContextCancellation checks if an error is due to context cancellation
func IsContextCancellation(err error) bool {
	return err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}

// ErrorIfNotCanceled logs an error unless it comes from a cancelled or
// expired context, which is the normal way commands and polls end.
func ErrorIfNotCanceled(log logr.Logger, err error, msg string, keysAndValues ...any) {
	if err != nil && !IsContextCancellation(err) {
		log.Error(err, msg, keysAndValues...)
	}
}
