package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// OllamaConfig configures the local Ollama embedder.
type OllamaConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// OllamaEmbedder generates embeddings with a local Ollama server.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

// NewOllamaEmbedder creates an Ollama-backed embedder. The host falls
// back to the OLLAMA_HOST environment resolution when not configured.
func NewOllamaEmbedder(cfg OllamaConfig) (*OllamaEmbedder, error) {
	host := envconfig.Host()
	if cfg.Host != "" {
		u, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("parse ollama host: %w", err)
		}
		host = u
	}
	model := cfg.Model
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaEmbedder{
		client: api.NewClient(host, http.DefaultClient),
		model:  model,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *OllamaEmbedder) Name() string { return "ollama" }

// Embed returns one vector per input text, in input order. The Ollama
// embeddings endpoint takes one prompt at a time.
func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
			Model:  e.model,
			Prompt: text,
		})
		if err != nil {
			return nil, fmt.Errorf("ollama embeddings: %w", err)
		}
		out[i] = resp.Embedding
	}
	return out, nil
}
