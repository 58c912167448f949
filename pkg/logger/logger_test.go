package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/rental-guide-service/pkg/logger"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("LoadMore: page loaded count=%d", 3)
	log.Warn("LoadMore: fetch failed: %v", "timeout")

	out := buf.String()
	assert.NotContains(t, out, "page loaded")
	assert.Contains(t, out, "fetch failed: timeout")
	assert.NoError(t, log.Close())
}

func TestLogger_UnknownLevel(t *testing.T) {
	_, err := logger.NewWithWriter(&bytes.Buffer{}, "verbose")
	require.Error(t, err)
}
