package applog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerEmitsSeverityAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(&buf, slog.LevelInfo))
	logger.With("game_id", "abc123").Warn("deadline approaching", "elapsed_ms", 480)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARNING", entry["severity"])
	assert.Equal(t, "deadline approaching", entry["message"])
	assert.Equal(t, "abc123", entry["game_id"])
	assert.EqualValues(t, 480, entry["elapsed_ms"])
}

func TestHandlerRespectsMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(&buf, slog.LevelWarn))
	logger.Info("should be dropped")
	assert.Empty(t, buf.Bytes())
}
