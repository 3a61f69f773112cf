package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "debug", Port: 8080})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}
	for _, tc := range tests {
		got, ok := logger.ParseLevel(tc.in)
		assert.Equal(t, tc.want, got, "level %q", tc.in)
		assert.Equal(t, tc.ok, ok, "level %q", tc.in)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logger.New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "deck_id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"deck_id":"abc"`)
}

func TestContextLogger(t *testing.T) {
	t.Parallel()
	ctxLogger, buf := logger.GetTestLogger(t)
	fallback, fallbackBuf := logger.GetTestLogger(t)

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContext(context.Background()))

	ctx := logger.WithLogger(context.Background(), ctxLogger)
	logger.FromContextOrDefault(ctx, fallback).Info("from context", "trace_id", "t-1")

	logger.AssertLogContains(t, buf, "from context")
	logger.AssertLogField(t, buf, "trace_id", "t-1")
	assert.Empty(t, fallbackBuf.String())

	assert.Equal(t, ctx, logger.WithLogger(ctx, nil), "nil logger leaves ctx unchanged")
}

func TestTraceID(t *testing.T) {
	t.Parallel()
	assert.Empty(t, logger.TraceIDFromContext(context.Background()))
	ctx := logger.WithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", logger.TraceIDFromContext(ctx))
}
