package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuwrite/internal/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.APIKeyEnv)
	assert.Equal(t, 800, cfg.Chunker.ChunkSize)
	assert.Equal(t, 200, cfg.Chunker.Overlap)
	assert.Equal(t, filepath.Join("rag_index", "index.json"), cfg.Index.Path)
	assert.Equal(t, 4, cfg.Index.Workers)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docuwrite.yaml")
	body := `
embedder:
  model: text-embedding-3-large
  api_key_env: MY_KEY
chunker:
  chunk_size: 400
  overlap: 50
index:
  path: /tmp/idx.json
retrieval:
  top_k: 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedder.Model)
	assert.Equal(t, "MY_KEY", cfg.Embedder.APIKeyEnv)
	assert.Equal(t, 400, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.Overlap)
	assert.Equal(t, "/tmp/idx.json", cfg.Index.Path)
	assert.Equal(t, 2, cfg.Retrieval.TopK)
	// untouched fields keep defaults
	assert.Equal(t, 4, cfg.Index.Workers)
	assert.Equal(t, 30, cfg.Embedder.TimeoutSecs)
}

func TestLoad_InvalidChunkingFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docuwrite.yaml")
	body := `
chunker:
  chunk_size: 100
  overlap: 100
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "want ConfigError, got %T", err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docuwrite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunker: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Retrieval.TopK = 7
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
