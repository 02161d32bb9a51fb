package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
	assert.Equal(t, 500, config.RAG.ChunkSize)
	assert.Equal(t, 3, config.RAG.TopK)
	assert.Equal(t, 100, config.RAG.BatchSize)
	assert.Equal(t, 500, config.RAG.MaxResponseTokens)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
	assert.True(t, config.Maintenance.ReconcileOnStartup)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
[server]
port = 9090

[rag]
chunk_size = 800
`), 0644))

	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(override, []byte(`
[server]
port = 7070
`), 0644))

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	// Later files override earlier files
	assert.Equal(t, 7070, config.Server.Port)
	// Values not overridden survive from earlier files
	assert.Equal(t, 800, config.RAG.ChunkSize)
	// Defaults survive where no file touches them
	assert.Equal(t, 3, config.RAG.TopK)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/lectio.toml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LECTIO_SERVER_PORT", "6060")
	t.Setenv("LECTIO_RAG_TOP_K", "5")
	t.Setenv("LECTIO_LLM_DEFAULT_PROVIDER", "claude")
	t.Setenv("LECTIO_LOG_OUTPUT", "stdout, file")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 6060, config.Server.Port)
	assert.Equal(t, 5, config.RAG.TopK)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)
	assert.Equal(t, []string{"stdout", "file"}, config.Logging.Output)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 5050, "0.0.0.0")
	assert.Equal(t, 5050, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 5050, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 * * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("not a schedule"))
}

func TestIsProduction(t *testing.T) {
	config := NewDefaultConfig()
	assert.False(t, config.IsProduction())

	config.Environment = "production"
	assert.True(t, config.IsProduction())

	config.Environment = " PROD "
	assert.True(t, config.IsProduction())
}
