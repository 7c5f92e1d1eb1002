package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "json", "debug")
	require.NoError(t, err)

	l.WithInput("vol.raw").LogSlice(context.Background(), 2, "vol2.raw")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "reading slice", rec["msg"])
	assert.Equal(t, "vol.raw", rec["input"])
	assert.Equal(t, "vol2.raw", rec["path"])
	assert.EqualValues(t, 2, rec["index"])

	_, err = New(&buf, "xml", "info")
	require.Error(t, err)
	_, err = New(&buf, "text", "chatty")
	require.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelInfo)

	l.LogHeaderGuess(context.Background(), 1100, 1000, 100)
	assert.Zero(t, buf.Len())

	l.LogPersist(context.Background(), "out.qa3", 2048)
	assert.Contains(t, buf.String(), "array saved")
	assert.Contains(t, buf.String(), "size=\"2.0 KiB\"")
}

func TestLogFailure(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelInfo)

	l.LogFailure(context.Background(), "Persist", errors.New("disk full"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "state=Persist")
	assert.Contains(t, buf.String(), "disk full")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
