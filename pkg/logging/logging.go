// Package logging configures the zerolog logger shared by every bibsort
// package. Standard output carries the formatted bibliography, so log
// records go to standard error and to a log file under the XDG state
// directory.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileLevel is the lowest level written to the log file. The file keeps a
// history of runs even when the console is quiet.
const FileLevel = zerolog.InfoLevel

// levels maps the -v count to the console level.
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

// LevelFor returns the console level for a -v count.
func LevelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		return zerolog.TraceLevel
	}
	return levels[verbosity]
}

// Options selects where log records go.
type Options struct {
	Verbosity int
	// Console receives human-readable records at LevelFor(Verbosity).
	Console io.Writer
	// LogFile receives JSON records at FileLevel or below. Empty disables
	// the file.
	LogFile string
	NoColor bool
}

// SetupLogger configures the global logger for a -v count, logging to
// standard error and to LogFilePath().
func SetupLogger(verbosity int) {
	_ = Setup(Options{
		Verbosity: verbosity,
		Console:   os.Stderr,
		LogFile:   LogFilePath(),
		NoColor:   os.Getenv("NO_COLOR") != "",
	})
}

// Setup installs the global logger and returns a function that closes the
// log file.
func Setup(opts Options) func() error {
	console := LevelFor(opts.Verbosity)
	global := console
	if opts.LogFile != "" && FileLevel < global {
		global = FileLevel
	}
	zerolog.SetGlobalLevel(global)

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{
				Out:        opts.Console,
				TimeFormat: time.Kitchen,
				NoColor:    opts.NoColor,
			}},
			Level: console,
		},
	}

	closeFile := func() error { return nil }
	var fileErr error
	if opts.LogFile != "" {
		var f *os.File
		if f, fileErr = openLogFile(opts.LogFile); fileErr == nil {
			writers = append(writers, &zerolog.FilteredLevelWriter{
				Writer: zerolog.LevelWriterAdapter{Writer: f},
				Level:  FileLevel,
			})
			closeFile = f.Close
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.LogFile).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().
		Int("verbosity", opts.Verbosity).
		Str("console", console.String()).
		Str("logFile", opts.LogFile).
		Msg("Logger initialized")
	return closeFile
}

// GetLogger returns a logger tagged with the package that uses it.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogFilePath is $XDG_STATE_HOME/bibsort/bibsort.log, or bibsort.log in
// the working directory when no state directory is known.
func LogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return "bibsort.log"
	}
	return filepath.Join(stateHome, "bibsort", "bibsort.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// LogCommand records the command line at debug level.
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation at debug level and
// returns a function that logs its duration.
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
