package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_ProductionWritesJSONAtInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newWithSink("member-search-api", "production", zapcore.AddSync(&buf))
	log.Debug("hidden")
	log.Info("listening", zap.String("port", "8080"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "listening", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "member-search-api", entry["service"])
	assert.Equal(t, "8080", entry["port"])
}

func TestNew_DevelopmentEnablesDebug(t *testing.T) {
	t.Parallel()

	log := New("member-search-api", "development")
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	prod := New("member-search-api", "production")
	assert.False(t, prod.Core().Enabled(zap.DebugLevel))
}
