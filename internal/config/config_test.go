package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pdfassist/internal/chunker"
	"pdfassist/internal/config"
	"pdfassist/internal/llm"
	"pdfassist/internal/retrieval"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "pt", cfg.Language)
	require.Equal(t, "openai", cfg.Embedder.Type)
	require.Equal(t, "openai", cfg.LLM.Type)
	require.Equal(t, chunker.DefaultWindowSize, cfg.Chunker.WindowSize)
	require.Equal(t, chunker.DefaultOverlap, cfg.Chunker.Overlap)
	require.Equal(t, retrieval.DefaultK, cfg.Retrieval.K)
	require.Equal(t, 1, cfg.Retrieval.NeighborRadius)
	require.Equal(t, retrieval.DefaultContextBudget, cfg.Retrieval.ContextBudget)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &config.AppConfig{
		Language: "it",
		Embedder: config.EmbedderConfig{Type: "none"},
		LLM: config.LLMConfig{
			Type:   "openai",
			OpenAI: &llm.OpenAIConfig{Model: "gpt-4o-mini", MaxTokens: 700},
		},
		ThemeOverride: "Idraulica industriale",
		LogFile:       "/tmp/pdfassist.log",
	}
	require.NoError(t, config.Save(path, in))

	out, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "it", out.Language)
	require.Equal(t, "none", out.Embedder.Type)
	require.Equal(t, "gpt-4o-mini", out.LLM.OpenAI.Model)
	require.Equal(t, 700, out.LLM.OpenAI.MaxTokens)
	require.Equal(t, "Idraulica industriale", out.ThemeOverride)
	require.Equal(t, "/tmp/pdfassist.log", out.LogFile)
	// Unset sections pick up defaults on load.
	require.Equal(t, chunker.DefaultWindowSize, out.Chunker.WindowSize)
	require.Equal(t, retrieval.DefaultK, out.Retrieval.K)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: [unclosed"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
