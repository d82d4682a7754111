package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize_ValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			assert.NoError(t, Initialize(level))
			assert.NotNil(t, Log)
		})
	}
}

func TestInitialize_InvalidLevel(t *testing.T) {
	assert.Error(t, Initialize("loud"))
}
