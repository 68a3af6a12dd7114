package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"pdfassist/internal/domain"
)

// OllamaConfig configures the local Ollama chat backend.
type OllamaConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// OllamaCompleter runs completions against a local Ollama server.
type OllamaCompleter struct {
	client *api.Client
	model  string
}

// NewOllamaCompleter creates an Ollama-backed completer. The host
// falls back to the OLLAMA_HOST environment resolution.
func NewOllamaCompleter(cfg OllamaConfig) (*OllamaCompleter, error) {
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
		model = "llama3.1"
	}
	return &OllamaCompleter{
		client: api.NewClient(host, http.DefaultClient),
		model:  model,
	}, nil
}

// Name returns the identifier of this completer implementation.
func (c *OllamaCompleter) Name() string { return "ollama" }

// Complete sends the conversation and accumulates the streamed reply.
func (c *OllamaCompleter) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	msgs := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, api.Message{Role: m.Role, Content: m.Content})
	}
	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": defaultTemperature,
			"num_predict": defaultMaxTokens,
		},
	}
	var sb strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletion, err)
	}
	return sb.String(), nil
}
