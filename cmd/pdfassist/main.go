package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pdfassist/internal/assistant"
	"pdfassist/internal/chunker"
	"pdfassist/internal/config"
	"pdfassist/internal/domain"
	"pdfassist/internal/embedding"
	"pdfassist/internal/llm"
	"pdfassist/internal/locale"
	"pdfassist/internal/logging"
	"pdfassist/internal/retrieval"
	"pdfassist/internal/session"
	"pdfassist/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, langFlag string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/pdfassist/config.yaml if not provided)")
	flag.StringVar(&langFlag, "lang", "", "Interface language (pt, it, en); overrides config")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: pdfassist [--config=config.yaml] [--lang=pt] document.pdf")
		os.Exit(1)
	}
	docPath := flag.Arg(0)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if langFlag != "" {
		cfg.Language = langFlag
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	locales, err := locale.Load()
	if err != nil {
		log.Fatalf("failed to load locale tables: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "none":
		// lexical-only retrieval
	case "openai", "":
		ec := embedding.OpenAIConfig{}
		if cfg.Embedder.OpenAI != nil {
			ec = *cfg.Embedder.OpenAI
		}
		e, err := embedding.NewOpenAIEmbedder(ec)
		if err != nil {
			// Retrieval degrades to the lexical index instead of aborting.
			logger.Warn("embedder unavailable", zap.Error(err))
		} else {
			emb = e
		}
	case "ollama":
		oc := embedding.OllamaConfig{}
		if cfg.Embedder.Ollama != nil {
			oc = *cfg.Embedder.Ollama
		}
		e, err := embedding.NewOllamaEmbedder(oc)
		if err != nil {
			logger.Warn("embedder unavailable", zap.Error(err))
		} else {
			emb = e
		}
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var completer domain.Completer
	switch cfg.LLM.Type {
	case "openai", "":
		lc := llm.OpenAIConfig{}
		if cfg.LLM.OpenAI != nil {
			lc = *cfg.LLM.OpenAI
		}
		completer, err = llm.NewOpenAICompleter(lc)
	case "ollama":
		oc := llm.OllamaConfig{}
		if cfg.LLM.Ollama != nil {
			oc = *cfg.LLM.Ollama
		}
		completer, err = llm.NewOllamaCompleter(oc)
	default:
		log.Fatalf("unknown llm: %s", cfg.LLM.Type)
	}
	if err != nil {
		log.Fatalf("llm init failed: %v", err)
	}

	splitter := chunker.NewRecursiveSplitter(cfg.Chunker.WindowSize, cfg.Chunker.Overlap)
	sess := session.New(cfg.Language)
	svc := assistant.New(locales, splitter, emb, completer, sess, logger, assistant.Config{
		K:              retrieval.ClampK(cfg.Retrieval.K),
		NeighborRadius: cfg.Retrieval.NeighborRadius,
		ContextBudget:  cfg.Retrieval.ContextBudget,
		ThemeOverride:  cfg.ThemeOverride,
	})

	stats, err := svc.IndexDocument(context.Background(), docPath)
	if err != nil {
		log.Fatalf("indexing failed: %v", err)
	}
	header := sess.SourceName() + " | " + svc.Lang().Message("indexed", map[string]string{
		"pages":  fmt.Sprint(stats.Pages),
		"chunks": fmt.Sprint(stats.Chunks),
		"index":  stats.IndexKind,
	})

	m := tui.New(svc, header)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
