package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/llm"
)

// isolate points the data directory and working directory at temp dirs
// so no developer config or .env leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("EDUCOACH_DB", "")
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "educoach"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "educoach", "taxonomies"), cfg.TaxonomyDir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, llm.ProviderNone, cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.Empty(t, cfg.File)

	dbPath, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "educoach", "educoach.db"), dbPath)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "educoach.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
taxonomy_dir: /srv/taxonomies
random_seed: 42
log:
  level: debug
llm:
  provider: openai
  timeout: 5s
  openai:
    api_key: from-file
    model: gpt-4o
`), 0o644))

	t.Setenv("EDUCOACH_LOG_LEVEL", "error")
	t.Setenv("EDUCOACH_LLM_OPENAI_BASE_URL", "http://localhost:11434/v1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "/srv/taxonomies", cfg.TaxonomyDir)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, "error", cfg.Log.Level, "env beats file")
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "from-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.OpenAI.BaseURL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("EDUCOACH_METRICS_FILE=/tmp/educoach.prom\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("EDUCOACH_METRICS_FILE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/educoach.prom", cfg.MetricsFile)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "explicit config file must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("llm:\n  provider: anthropic\n"), 0o644))
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "llm.anthropic.api_key")
}

func TestResolveDBPath(t *testing.T) {
	dir := isolate(t)

	cfg := &Config{DataDir: dir, DBPath: filepath.Join(dir, "nested", "x.db")}
	p, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "nested"))

	t.Setenv("EDUCOACH_DB", filepath.Join(dir, "env", "y.db"))
	cfg = &Config{DataDir: dir}
	p, err = cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "y.db"), p)
}
