package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/logger"
)

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithProduction("api"), logger.WithOutput(&buf))
	log.Info("hello", logger.Method("GET"))
	log.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "api", rec["service"])
	assert.Equal(t, "GET", rec["method"])
	assert.Contains(t, rec, "ts")
}

func TestNewText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("api"), logger.WithOutput(&buf))
	log.Debug("visible", logger.Path("/x"))

	out := buf.String()
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "path=/x")
	assert.NotContains(t, out, "\x1b[", "colour is disabled for non-terminal writers")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewFromConfig(logger.Config{AppName: "svc", Env: "production", Level: "error"}, logger.WithOutput(&buf))
	log.Warn("dropped")
	assert.Empty(t, buf.String())

	log.Error("kept")
	assert.Contains(t, buf.String(), `"service":"svc"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}
