package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("session.id", "abc")

	log.Debug("bot moved")
	log.Warn("store unavailable")

	assert.Contains(t, debugBuf.String(), "bot moved")
	assert.Contains(t, debugBuf.String(), "store unavailable")
	assert.NotContains(t, warnBuf.String(), "bot moved")
	assert.Contains(t, warnBuf.String(), "store unavailable")
	assert.Contains(t, warnBuf.String(), "session.id=abc")
}

func TestMultiHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewWithoutOtel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, false)

	log.Info("round finished", "outcome", "draw")

	assert.Contains(t, buf.String(), "outcome=draw")
}
