package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/pkg/logger"
)

func TestLogger_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Out: &buf})
	l.Component("permissions").Info().Str("codename", "view_vendor_record").Msg("permiso creado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "permissions", entry["component"])
	assert.Equal(t, "view_vendor_record", entry["codename"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	l.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())
}

func TestLogger_ComponenteAnidadoNoDuplicaClave(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	l.Component("http").Component("permissions").Info().Msg("permiso asignado")

	line := buf.String()
	assert.Equal(t, 1, strings.Count(line, `"component"`))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "permissions", entry["component"])
}
