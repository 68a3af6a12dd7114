// Package llm provides the external text-completion service used to
// answer questions. Calls are synchronous and carry no internal retry;
// failures are wrapped as domain.ErrCompletion and surfaced by the
// caller as a visible chat message.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"pdfassist/internal/domain"
)

// Generation defaults mirror a lightweight chat model configuration:
// low temperature, bounded output.
const (
	defaultMaxTokens   = 900
	defaultTemperature = 0.2
)

// OpenAIConfig configures the OpenAI-compatible chat client. BaseURL
// allows pointing the same client at Groq or any compatible endpoint.
type OpenAIConfig struct {
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// OpenAICompleter talks to an OpenAI-compatible chat completions API.
type OpenAICompleter struct {
	client      openai.Client
	model       openai.ChatModel
	maxTokens   int
	temperature float64
}

// NewOpenAICompleter creates the chat client. A missing API key is an
// error here: unlike embeddings, there is no degraded mode for the
// completion service.
func NewOpenAICompleter(cfg OpenAIConfig) (*OpenAICompleter, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", keyEnv)
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.ChatModelGPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	return &OpenAICompleter{
		client:      openai.NewClient(opts...),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Name returns the identifier of this completer implementation.
func (c *OpenAICompleter) Name() string { return "openai" }

// Complete sends the structured prompt and returns the model's text.
func (c *OpenAICompleter) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toParams(messages),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
		Temperature: openai.Float(c.temperature),
	}
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletion, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}

func toParams(messages []domain.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
