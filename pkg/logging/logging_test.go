package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{5, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLogger(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Setenv(LogFileEnv, "")

	SetupLogger(1)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	_, err := os.Stat(filepath.Join(stateHome, "compinst", "compinst.log"))
	assert.NoError(t, err)
}

func TestSetupWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "nested", "run.log")

	Setup(Options{Verbosity: 1, Console: &console, NoColor: true, File: logFile})
	log.Info().Str("package", "acme/widgets").Msg("Installing")

	assert.Contains(t, console.String(), "Installing")
	assert.Contains(t, console.String(), "package=acme/widgets")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"Installing"`)
}

func TestSetupWithoutFile(t *testing.T) {
	var console bytes.Buffer

	Setup(Options{Console: &console, NoColor: true, File: "-"})
	log.Warn().Msg("careful")

	assert.Contains(t, console.String(), "careful")
	assert.NotContains(t, console.String(), "Failed to create log file")
}

func TestLogFilePath(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		t.Setenv(LogFileEnv, "/var/log/compinst.log")
		assert.Equal(t, "/var/log/compinst.log", LogFilePath())
	})

	t.Run("XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv(LogFileEnv, "")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "compinst", "compinst.log"), LogFilePath())
	})

	t.Run("xdg default", func(t *testing.T) {
		t.Setenv(LogFileEnv, "")
		t.Setenv("XDG_STATE_HOME", "")
		got := LogFilePath()
		assert.True(t, strings.HasSuffix(got, filepath.Join("compinst", "compinst.log")), got)
	})
}

func TestLogOperationStart(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "copy")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"operation":"copy"`)
}
