package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rustyeddy/marketsim/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("symbol", "AAPL").Msg("generated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "AAPL", entry["symbol"])
	assert.Equal(t, "generated", entry["message"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug", Format: "console"}, &buf)
	require.NoError(t, err)

	log.Debug().Msg("tick")
	assert.Contains(t, buf.String(), "tick")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, nil)
	assert.Error(t, err)
}
