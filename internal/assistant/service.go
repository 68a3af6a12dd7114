// Package assistant orchestrates one synchronous turn per user action:
// structural-intent short-circuits, context assembly, prompt
// construction and the completion call. Structural failures are caught
// at the turn boundary and converted into a single visible message;
// nothing here crashes the session or corrupts conversation state.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"pdfassist/internal/domain"
	"pdfassist/internal/index"
	"pdfassist/internal/intent"
	"pdfassist/internal/loader"
	"pdfassist/internal/locale"
	"pdfassist/internal/retrieval"
	"pdfassist/internal/session"
	"pdfassist/internal/theme"
)

// Task identifies a quick-task shortcut.
type Task string

// Quick tasks offered alongside free-form questions.
const (
	TaskPageSummary Task = "page_summary"
	TaskDocSummary  Task = "doc_summary"
	TaskGlossary    Task = "glossary"
	TaskFAQ         Task = "faq"
	TaskStudyPlan   Task = "study_plan"
	TaskExercises   Task = "exercises"
)

// Config tunes the retrieval side of the assistant.
type Config struct {
	K              int
	NeighborRadius int
	ContextBudget  int
	ThemeOverride  string
}

// Stats reports the outcome of indexing a document.
type Stats struct {
	Pages     int
	Chunks    int
	IndexKind string
	Skipped   bool
}

// Reply is one assistant answer plus the provenance of the context it
// was grounded in.
type Reply struct {
	Text      string
	Citations []retrieval.Citation
}

// Service ties the pipeline together for one session.
type Service struct {
	locales   *locale.Table
	splitter  domain.Chunker
	embedder  domain.Embedder
	completer domain.Completer
	sess      *session.Session
	log       *zap.Logger
	cfg       Config
}

// New wires an assistant service. embedder may be nil (lexical-only).
func New(locales *locale.Table, splitter domain.Chunker, embedder domain.Embedder,
	completer domain.Completer, sess *session.Session, log *zap.Logger, cfg Config) *Service {
	return &Service{
		locales:   locales,
		splitter:  splitter,
		embedder:  embedder,
		completer: completer,
		sess:      sess,
		log:       log,
		cfg:       cfg,
	}
}

// Session exposes the session for UI-level state (name, language).
func (s *Service) Session() *session.Session { return s.sess }

// Locales exposes the locale tables for UI rendering.
func (s *Service) Locales() *locale.Table { return s.locales }

// Lang returns the string table for the session's language.
func (s *Service) Lang() *locale.Lang { return s.locales.Lang(s.sess.Language) }

// IndexDocument ingests a PDF: hash gate, page load, chunking, index
// build and an atomic session swap. Re-uploading identical bytes skips
// re-indexing and keeps the conversation.
func (s *Service) IndexDocument(ctx context.Context, path string) (Stats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read document: %w", err)
	}
	key := session.HashBytes(raw)
	if s.sess.SameDocument(key) {
		s.log.Info("document unchanged, skipping re-index", zap.String("path", path))
		return Stats{
			Pages:     len(s.sess.Pages()),
			Chunks:    s.sess.ChunkCount(),
			IndexKind: s.sess.Index().Kind(),
			Skipped:   true,
		}, nil
	}

	pages, err := loader.Load(path)
	if err != nil {
		return Stats{}, err
	}
	chunks := s.splitter.Split(pages)
	idx := index.Build(ctx, chunks, s.embedder, s.log)

	detected := theme.Detect(pages)
	if s.cfg.ThemeOverride != "" {
		detected = s.cfg.ThemeOverride
	}
	s.sess.ReplaceDocument(key, pages, idx, detected, len(chunks))

	s.log.Info("document indexed",
		zap.String("path", path),
		zap.Int("pages", len(pages)),
		zap.Int("chunks", len(chunks)),
		zap.String("index", idx.Kind()))
	return Stats{Pages: len(pages), Chunks: len(chunks), IndexKind: idx.Kind()}, nil
}

// Ask answers a free-form question. Errors never escape: they become
// locale messages, and the turn is always recorded so the user can
// retry by re-asking.
func (s *Service) Ask(ctx context.Context, question string) Reply {
	lang := s.Lang()

	switch intent.Classify(question, lang) {
	case intent.PageCount:
		return s.record(question, lang.Message("page_count", map[string]string{
			"total": strconv.Itoa(len(s.sess.Pages())),
		}), nil)
	case intent.FileName:
		return s.record(question, lang.Message("file_name", map[string]string{
			"file": s.sess.SourceName(),
		}), nil)
	}

	res, err := s.assemble(ctx, question, nil)
	if err != nil {
		return s.record(question, s.failureMessage(lang, err), nil)
	}

	userTurn := locale.Render(lang.Prompts.QA, map[string]string{
		"name":     s.sess.UserName,
		"question": question,
		"context":  res.Context,
	})
	answer := s.complete(ctx, lang, userTurn)
	return s.record(question, answer, res.Citations)
}

// RunTask executes a quick task. page is the 0-based target page for
// TaskPageSummary and ignored otherwise.
func (s *Service) RunTask(ctx context.Context, task Task, page int) Reply {
	lang := s.Lang()

	question := string(task)
	vars := map[string]string{}

	var res *retrieval.Result
	var err error
	if task == TaskPageSummary {
		question = "pagina " + strconv.Itoa(page+1)
		vars["page"] = strconv.Itoa(page + 1)
		res, err = s.assemble(ctx, question, &page)
	} else {
		// Document-level tasks read the leading pages; a task label is
		// not a searchable question.
		res, err = s.documentContext()
	}
	if err != nil {
		return s.record(question, s.failureMessage(lang, err), nil)
	}

	userTurn := locale.Render(lang.Prompts.Task, map[string]string{
		"name":         s.sess.UserName,
		"task":         string(task),
		"instructions": lang.Task(string(task), vars),
		"context":      res.Context,
	})
	answer := s.complete(ctx, lang, userTurn)
	return s.record(question, answer, res.Citations)
}

// Welcome produces the first assistant message after the user gives
// their name: an LLM self-introduction with a deterministic fallback
// when the call fails.
func (s *Service) Welcome(ctx context.Context) string {
	lang := s.Lang()
	userTurn := locale.Render(lang.Prompts.WelcomeUser, map[string]string{"name": s.sess.UserName})
	msg, err := s.completer.Complete(ctx, s.prompt(lang, userTurn, false))
	if err != nil || msg == "" {
		s.log.Warn("welcome completion failed, using canned greeting", zap.Error(err))
		msg = lang.Message("first_reply", map[string]string{"name": s.sess.UserName})
	}
	s.sess.Append(domain.RoleAssistant, msg)
	return msg
}

func (s *Service) assemble(ctx context.Context, question string, forced *int) (*retrieval.Result, error) {
	lang := s.Lang()
	return retrieval.Assemble(ctx, question, s.sess.Pages(), s.sess.Index(), retrieval.Options{
		K:              s.cfg.K,
		NeighborRadius: s.cfg.NeighborRadius,
		ContextBudget:  s.cfg.ContextBudget,
		ForcedPage:     forced,
		Patterns:       lang.Patterns(),
	})
}

func (s *Service) documentContext() (*retrieval.Result, error) {
	pages := s.sess.Pages()
	units := make([]retrieval.Unit, 0, len(pages))
	for _, p := range pages {
		units = append(units, retrieval.Unit{Text: p.Text, Page: p.Index, Source: p.SourceName})
	}
	budget := s.cfg.ContextBudget
	if budget <= 0 {
		budget = retrieval.DefaultContextBudget
	}
	kept := retrieval.Head(units, budget)
	if len(kept) == 0 {
		return nil, domain.ErrNoRelevantContent
	}
	citations := make([]retrieval.Citation, 0, len(kept))
	for _, u := range kept {
		citations = append(citations, retrieval.Citation{Page: u.Page + 1, Source: u.Source})
	}
	return &retrieval.Result{
		Units:     kept,
		Citations: citations,
		Context:   retrieval.Compact(kept, budget),
	}, nil
}

func (s *Service) failureMessage(lang *locale.Lang, err error) string {
	var oor *domain.PageOutOfRangeError
	switch {
	case errors.As(err, &oor):
		return lang.Message("page_not_exist", map[string]string{
			"page":  strconv.Itoa(oor.Page + 1),
			"total": strconv.Itoa(oor.Total),
		})
	case errors.Is(err, domain.ErrNoRelevantContent):
		return lang.Message("not_found", nil)
	}
	return lang.Message("completion_failed", map[string]string{"error": err.Error()})
}

func (s *Service) complete(ctx context.Context, lang *locale.Lang, userTurn string) string {
	answer, err := s.completer.Complete(ctx, s.prompt(lang, userTurn, true))
	if err != nil {
		s.log.Warn("completion failed", zap.Error(err))
		return lang.Message("completion_failed", map[string]string{"error": err.Error()})
	}
	return answer
}

// prompt builds system instructions + prior history + the user turn.
func (s *Service) prompt(lang *locale.Lang, userTurn string, withHistory bool) []domain.Message {
	sys := locale.Render(lang.Prompts.System, map[string]string{
		"theme": s.sess.Theme(),
		"name":  s.sess.UserName,
	})
	msgs := []domain.Message{{Role: domain.RoleSystem, Content: sys}}
	if withHistory {
		msgs = append(msgs, s.sess.History()...)
	}
	return append(msgs, domain.Message{Role: domain.RoleUser, Content: userTurn})
}

// record appends the user turn and the assistant answer to the
// conversation and returns the reply. Failed turns are recorded too,
// keeping state consistent for a retry.
func (s *Service) record(question, answer string, citations []retrieval.Citation) Reply {
	s.sess.Append(domain.RoleUser, question)
	s.sess.Append(domain.RoleAssistant, answer)
	return Reply{Text: answer, Citations: citations}
}
