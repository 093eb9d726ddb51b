package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"productos/internal/config"
	"productos/internal/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("product", "Widget").Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"product":"Widget"`)
	assert.Contains(t, buf.String(), `"time"`)
}

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	log := logger.New(config.LogConfig{Level: "debug", Format: "json", File: file})

	log.Debug().Msg("persisted")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "persisted")
}
