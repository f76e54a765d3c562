package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Console = &buf

	logger, closeFn, err := New(cfg)
	require.NoError(t, err)
	defer closeFn()

	logger.Info("routine detail")
	logger.Warn("gap update skipped")

	assert.NotContains(t, buf.String(), "routine detail")
	assert.Contains(t, buf.String(), "gap update skipped")
	assert.Contains(t, buf.String(), "WARN")
}

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "educoach.log")
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.File = path
	cfg.Console = &bytes.Buffer{}

	logger, closeFn, err := New(cfg)
	require.NoError(t, err)

	logger.Named("skilldev").Debug("skills identified")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"skills identified"`)
	assert.Contains(t, string(data), `"logger":"skilldev"`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	_, _, err := New(cfg)
	assert.Error(t, err)
}
