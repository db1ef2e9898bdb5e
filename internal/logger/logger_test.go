package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestInitializeTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeTo(&buf, "info", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	WithService("rental").Info("issued", "rental_id", 12)
	Get().Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "issued", line["msg"])
	assert.Equal(t, "rental", line["service"])
	assert.EqualValues(t, 12, line["rental_id"])
}
