package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
		{"negative counts as zero", -1, zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, LevelFor(tt.verbosity))
		})
	}
}

func TestSetupLoggerCreatesLogFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)

	SetupLogger(0)

	assert.Equal(t, FileLevel, zerolog.GlobalLevel(), "the file wants info records")
	_, err := os.Stat(filepath.Join(tempDir, "bibsort", "bibsort.log"))
	assert.NoError(t, err)
}

func TestSetupSplitsConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "state", "bibsort.log")

	closeFile := Setup(Options{Console: &console, LogFile: logFile, NoColor: true})
	log.Info().Msg("wrote refs.bib")
	log.Warn().Msg("two entries share a key")
	log.Debug().Msg("parsed 12 entries")
	require.NoError(t, closeFile())

	assert.NotContains(t, console.String(), "wrote refs.bib")
	assert.Contains(t, console.String(), "two entries share a key")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"wrote refs.bib"`)
	assert.Contains(t, string(data), "two entries share a key")
	assert.NotContains(t, string(data), "parsed 12 entries")
}

func TestSetupWithoutLogFile(t *testing.T) {
	var console bytes.Buffer

	closeFile := Setup(Options{Verbosity: 2, Console: &console, NoColor: true})
	defer func() { _ = closeFile() }()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	log.Debug().Msg("parsed 12 entries")
	assert.Contains(t, console.String(), "parsed 12 entries")
}

func TestSetupUnwritableLogFile(t *testing.T) {
	var console bytes.Buffer
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	closeFile := Setup(Options{Console: &console, LogFile: filepath.Join(blocker, "bibsort.log"), NoColor: true})
	defer func() { _ = closeFile() }()

	assert.Contains(t, console.String(), "Log file unavailable")
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, filepath.Join("/custom/state", "bibsort", "bibsort.log"), LogFilePath())
}

func TestGetLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("format")
	logger.Info().Msg("rendering")

	assert.Contains(t, buf.String(), `"component":"format"`)
	assert.Contains(t, buf.String(), "rendering")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "parse")
	require.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogCommand("bibsort", []string{"refs.bib"})

	assert.Contains(t, buf.String(), "refs.bib")
	assert.Contains(t, buf.String(), "Executing command")
}
