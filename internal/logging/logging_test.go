package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStderrOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: slog.LevelInfo, Stderr: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("built site", "pages", 8)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "built site")
	assert.Contains(t, out, "pages=8")
}

func TestNewWithLogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "codex.log")

	logger, closeFn, err := New(Options{Level: slog.LevelDebug, Stderr: &buf, LogFile: path})
	require.NoError(t, err)

	logger.Warn("manifest not loaded", "source", "codex.json")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"manifest not loaded"`)
	assert.Contains(t, buf.String(), "manifest not loaded")
}
