package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.perplexity.ai", cfg.Completion.BaseURL)
	assert.Equal(t, "PERPLEXITY_API_KEY", cfg.Completion.APIKeyEnv)
	assert.Equal(t, "sonar-pro", cfg.Completion.Model)
	assert.Equal(t, 30, cfg.Completion.TimeoutSecs)
	assert.Equal(t, 3, cfg.Retriever.TopChapters)
	assert.Equal(t, "data", cfg.Knowledge.Dir)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
completion:
  model: sonar
retriever:
  top_chapters: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sonar", cfg.Completion.Model)
	assert.Equal(t, 5, cfg.Retriever.TopChapters)
	assert.Equal(t, "https://api.perplexity.ai", cfg.Completion.BaseURL)
	assert.Equal(t, 30, cfg.Completion.TimeoutSecs)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("completion: [not a map"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &AppConfig{
		Completion: CompletionConfig{BaseURL: "http://localhost:8080", APIKeyEnv: "KEY", Model: "m", TimeoutSecs: 10, MaxRetries: 1},
		Retriever:  RetrieverConfig{TopChapters: 2},
		Knowledge:  KnowledgeConfig{Dir: "kb"},
		Log:        LogConfig{Debug: true, File: "out.log"},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
