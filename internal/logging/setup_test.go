package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandlerText(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{name: "trace level", logLevel: "trace", expectedLevel: log.DebugLevel},
		{name: "debug level", logLevel: "debug", expectedLevel: log.DebugLevel},
		{name: "info level", logLevel: "info", expectedLevel: log.InfoLevel},
		{name: "warn level", logLevel: "warn", expectedLevel: log.WarnLevel},
		{name: "warning level", logLevel: "warning", expectedLevel: log.WarnLevel},
		{name: "error level", logLevel: "error", expectedLevel: log.ErrorLevel},
		{name: "unknown level defaults to error", logLevel: "bogus", expectedLevel: log.ErrorLevel},
		{name: "case insensitive", logLevel: "DEBUG", expectedLevel: log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			handler := SetupHandlerText(tt.logLevel, buf)
			require.NotNil(t, handler)

			logger, ok := handler.(*log.Logger)
			require.True(t, ok, "expected charmbracelet log.Logger")
			assert.Equal(t, tt.expectedLevel, logger.GetLevel())
		})
	}
}

func TestSetupHandlerTextNilWriter(t *testing.T) {
	handler := SetupHandlerText("info", nil)
	require.NotNil(t, handler)
}

func TestSetupHandlerTextOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := SetupHandlerText("debug", buf)
	logger := slog.New(handler)

	logger.Debug("compiling", "modules", 3)
	assert.Contains(t, buf.String(), "compiling")
	assert.Contains(t, buf.String(), "modules")
}

func TestSetupHandlerTextFiltersBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := SetupHandlerText("error", buf)
	logger := slog.New(handler)

	logger.Info("should not appear")
	assert.Empty(t, buf.String())

	logger.Error("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestSetupHandlerJSON(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		level    slog.Level
		enabled  bool
	}{
		{name: "debug enabled at debug", logLevel: "debug", level: slog.LevelDebug, enabled: true},
		{name: "debug disabled at error", logLevel: "error", level: slog.LevelDebug, enabled: false},
		{name: "error enabled at error", logLevel: "error", level: slog.LevelError, enabled: true},
		{name: "info enabled at info", logLevel: "info", level: slog.LevelInfo, enabled: true},
		{name: "warn enabled at warn", logLevel: "warn", level: slog.LevelWarn, enabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			handler := SetupHandlerJSON(tt.logLevel, buf)
			require.NotNil(t, handler)
			assert.Equal(t, tt.enabled, handler.Enabled(context.Background(), tt.level))
		})
	}
}

func TestSetupHandlerJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := SetupHandlerJSON("info", buf)
	logger := slog.New(handler)

	logger.Info("parsed", "units", 2)
	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
	assert.Contains(t, line, `"parsed"`)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	SetupLogger("debug")
	assert.NotEqual(t, original, slog.Default())
}
