package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLoggerAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "previewhost.log")
	logger, closer, err := OpenLogger(path, slog.LevelInfo)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("preview loaded", slog.String("path", "/tmp/a.txt"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="preview loaded" path=/tmp/a.txt`)
	assert.NotContains(t, string(data), "hidden")
}

func TestOpenLoggerWithoutPathDiscards(t *testing.T) {
	logger, closer, err := OpenLogger("", slog.LevelDebug)
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoError(t, closer.Close())
}
