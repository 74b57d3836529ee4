package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestInfoWritesFields(t *testing.T) {
	buf := capture(t)

	Info("server starting", map[string]interface{}{"port": "8080"})

	assert.Contains(t, buf.String(), `"message":"server starting"`)
	assert.Contains(t, buf.String(), `"port":"8080"`)
}

func TestInfoWithNilFields(t *testing.T) {
	buf := capture(t)

	Info("shutting down server", nil)

	assert.Contains(t, buf.String(), `"message":"shutting down server"`)
}

func TestWarnIncludesError(t *testing.T) {
	buf := capture(t)

	Warn("cache unavailable", errors.New("dial refused"))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"error":"dial refused"`)
}
