package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newSourceTestLogger(showSourceFor ...slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	})
	return slog.New(NewConditionalSourceHandler(base, showSourceFor...)), &buf
}

func TestConditionalSourceHandler_SourcePerLevel(t *testing.T) {
	log, buf := newSourceTestLogger(slog.LevelWarn, slog.LevelError)

	log.Debug("boot")
	log.Info("listening")
	assert.NotContains(t, buf.String(), "source=")

	buf.Reset()
	log.Warn("slow query")
	assert.Contains(t, buf.String(), "source=")

	buf.Reset()
	log.Error("query failed")
	assert.Contains(t, buf.String(), "source=")
}

func TestConditionalSourceHandler_AllLevelsOptIn(t *testing.T) {
	log, buf := newSourceTestLogger(slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError)

	log.Info("listening")
	assert.Contains(t, buf.String(), "source=")
}

func TestConditionalSourceHandler_PreservesAttrs(t *testing.T) {
	log, buf := newSourceTestLogger(slog.LevelError)

	log.With("agency_id", "ag_123").Info("branding updated")

	out := buf.String()
	assert.NotContains(t, out, "source=")
	assert.Contains(t, out, "agency_id=ag_123")
}

func TestConditionalSourceHandler_PreservesGroups(t *testing.T) {
	log, buf := newSourceTestLogger(slog.LevelError)

	log.WithGroup("request").Info("request completed", "path", "/bookings")

	out := buf.String()
	assert.NotContains(t, out, "source=")
	assert.Contains(t, out, "path")
}

func TestConditionalSourceHandler_DelegatesEnabled(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewConditionalSourceHandler(base, slog.LevelError)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}
