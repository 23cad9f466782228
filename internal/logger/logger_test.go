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

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", "", &buf)

	l.Debug("hidden")
	l.Info("prompt accepted", "tier", "free")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "prompt accepted", entry["msg"])
	assert.Equal(t, "free", entry["tier"])
}

func TestNew_LevelOverride(t *testing.T) {
	var buf bytes.Buffer
	l := New("development", "warn", &buf)

	l.Info("skipped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("", false))
	assert.Equal(t, slog.LevelInfo, parseLevel("", true))
	assert.Equal(t, slog.LevelError, parseLevel(" ERROR ", false))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning", true))
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithContext(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}
