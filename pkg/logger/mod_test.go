package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("Should write structured records to the configured output", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: InfoLevel, Output: &buf})

		log.Info("compiled", "marks", 3)

		out := buf.String()
		assert.Contains(t, out, "compiled")
		assert.Contains(t, out, "marks")
	})

	t.Run("Should suppress records below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: ErrorLevel, Output: &buf})

		log.Info("hidden")
		log.Error("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("Should emit JSON when configured", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})

		log.Info("compiled")

		assert.Contains(t, buf.String(), `"msg":"compiled"`)
	})

	t.Run("Should fall back to defaults for a nil config", func(t *testing.T) {
		assert.NotNil(t, NewLogger(nil))
	})
}

func TestGetDefault(t *testing.T) {
	t.Run("Should lazily initialize the default logger", func(t *testing.T) {
		defaultLogger = nil
		require.NotNil(t, GetDefault())
	})
}
