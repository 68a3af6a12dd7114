// Package config loads the application configuration from YAML,
// following the usual lookup order: ./config.yaml, then the per-user
// path, writing defaults there on first run.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pdfassist/internal/chunker"
	"pdfassist/internal/embedding"
	"pdfassist/internal/llm"
	"pdfassist/internal/locale"
	"pdfassist/internal/retrieval"
)

// EmbedderConfig selects and configures the embedder implementation.
// Type is "openai", "ollama" or "none"; "none" disables semantic
// retrieval and the lexical index serves queries alone.
type EmbedderConfig struct {
	Type   string                  `yaml:"type"`
	OpenAI *embedding.OpenAIConfig `yaml:"openai,omitempty"`
	Ollama *embedding.OllamaConfig `yaml:"ollama,omitempty"`
}

// LLMConfig selects and configures the chat completer. Type is
// "openai" or "ollama".
type LLMConfig struct {
	Type   string            `yaml:"type"`
	OpenAI *llm.OpenAIConfig `yaml:"openai,omitempty"`
	Ollama *llm.OllamaConfig `yaml:"ollama,omitempty"`
}

// ChunkerConfig configures how pages are split into chunks.
type ChunkerConfig struct {
	WindowSize int `yaml:"window_size"`
	Overlap    int `yaml:"overlap"`
}

// RetrievalConfig tunes context assembly.
type RetrievalConfig struct {
	K              int `yaml:"k"`
	NeighborRadius int `yaml:"neighbor_radius"`
	ContextBudget  int `yaml:"context_budget"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Language      string          `yaml:"language"`
	Embedder      EmbedderConfig  `yaml:"embedder"`
	LLM           LLMConfig       `yaml:"llm"`
	Chunker       ChunkerConfig   `yaml:"chunker"`
	Retrieval     RetrievalConfig `yaml:"retrieval"`
	ThemeOverride string          `yaml:"theme_override,omitempty"`
	LogFile       string          `yaml:"log_file,omitempty"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/pdfassist/config.yaml.
// If neither exists, it writes defaults to ~/.config/pdfassist/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pdfassist", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Language: locale.DefaultLanguage,
		Embedder: EmbedderConfig{Type: "openai", OpenAI: &embedding.OpenAIConfig{}},
		LLM:      LLMConfig{Type: "openai", OpenAI: &llm.OpenAIConfig{}},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Language == "" {
		cfg.Language = locale.DefaultLanguage
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "openai"
	}
	if cfg.LLM.Type == "" {
		cfg.LLM.Type = "openai"
	}
	if cfg.Chunker.WindowSize == 0 {
		cfg.Chunker.WindowSize = chunker.DefaultWindowSize
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = chunker.DefaultOverlap
	}
	if cfg.Retrieval.K == 0 {
		cfg.Retrieval.K = retrieval.DefaultK
	}
	if cfg.Retrieval.NeighborRadius == 0 {
		cfg.Retrieval.NeighborRadius = 1
	}
	if cfg.Retrieval.ContextBudget == 0 {
		cfg.Retrieval.ContextBudget = retrieval.DefaultContextBudget
	}
}
