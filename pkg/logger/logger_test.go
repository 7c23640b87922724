package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_EmitsServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "info", &buf)

	l.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "storefront", entry["service"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func(l *slog.Logger)
		expected bool
	}{
		{"debug suppressed at info", "info", func(l *slog.Logger) { l.Debug("x") }, false},
		{"info emitted at info", "info", func(l *slog.Logger) { l.Info("x") }, true},
		{"info suppressed at warn", "warn", func(l *slog.Logger) { l.Info("x") }, false},
		{"error emitted at warn", "warn", func(l *slog.Logger) { l.Error("x") }, true},
		{"unknown level defaults to info", "bogus", func(l *slog.Logger) { l.Debug("x") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter("storefront", tt.level, &buf)
			tt.logFn(l)
			assert.Equal(t, tt.expected, buf.Len() > 0)
		})
	}
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", CorrelationIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}

func TestUserID_RoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "42")
	assert.Equal(t, "42", UserIDFromContext(ctx))
	assert.Empty(t, UserIDFromContext(context.Background()))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	stored := NewWithWriter("storefront", "info", &buf)
	ctx := NewContext(context.Background(), stored)
	assert.Equal(t, stored, FromContext(ctx))
}

func TestWithContext_EnrichesFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("storefront", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "corr-1")
	ctx = WithUserID(ctx, "7")

	WithContext(ctx, base).Info("enriched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "corr-1", entry["correlation_id"])
	assert.Equal(t, "7", entry["user_id"])
}
