package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNop_NoEscribe(t *testing.T) {
	l := Nop()
	l.Info().Str("k", "v").Msg("ignorado")
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
}

func TestNew_CamposDeAplicacion(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{App: "retail-pos", Env: "production", Level: "info", Component: "reconcile", Out: &buf})
	l.Module("returns").Warn().Str("return_id", "r-1").Msg("sin movimiento")
	l.Debug().Msg("filtrado por nivel")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "retail-pos", entry["app"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "reconcile", entry["component"])
	assert.Equal(t, "returns", entry["module"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "r-1", entry["return_id"])
}
