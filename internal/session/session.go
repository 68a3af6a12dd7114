// Package session holds the per-session conversation state and the
// identity of the currently indexed document. One session drives one
// sequential stream of operations; there is no concurrent mutation, so
// no locking. If adapted to serve multiple users, keep one Session per
// session key, never shared.
package session

import (
	"crypto/sha256"
	"encoding/hex"

	"pdfassist/internal/domain"
)

// Session is the explicit session-context object passed into every
// component call; there are no ambient globals.
type Session struct {
	UserName string
	Language string

	history    []domain.Message
	docKey     string
	pages      []domain.Page
	index      domain.Index
	theme      string
	chunkCount int
}

// New creates an empty session with the given UI language.
func New(language string) *Session {
	return &Session{Language: language}
}

// HashBytes returns the document identity for raw uploaded bytes: the
// hex SHA-256 digest used as the cache key gating re-indexing.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// SameDocument reports whether key matches the currently indexed
// document, in which case re-indexing is skipped.
func (s *Session) SameDocument(key string) bool {
	return s.docKey != "" && s.docKey == key
}

// ReplaceDocument swaps the indexed document: pages, index, theme and
// document key are replaced together and the conversation history is
// cleared, never leaving the session half-updated.
func (s *Session) ReplaceDocument(key string, pages []domain.Page, idx domain.Index, theme string, chunkCount int) {
	s.docKey = key
	s.pages = pages
	s.index = idx
	s.theme = theme
	s.chunkCount = chunkCount
	s.history = nil
}

// Indexed reports whether a document is loaded.
func (s *Session) Indexed() bool { return s.index != nil }

// Pages returns the ordered page sequence of the active document.
func (s *Session) Pages() []domain.Page { return s.pages }

// Index returns the active document's retrieval index.
func (s *Session) Index() domain.Index { return s.index }

// Theme returns the detected (or overridden) document theme.
func (s *Session) Theme() string { return s.theme }

// SetTheme overrides the detected theme.
func (s *Session) SetTheme(t string) {
	if t != "" {
		s.theme = t
	}
}

// ChunkCount returns the number of chunks the index was built from.
func (s *Session) ChunkCount() int { return s.chunkCount }

// SourceName returns the active document's file name, or "" when no
// document is loaded.
func (s *Session) SourceName() string {
	if len(s.pages) == 0 {
		return ""
	}
	return s.pages[0].SourceName
}

// Append records one conversation turn.
func (s *Session) Append(role, content string) {
	s.history = append(s.history, domain.Message{Role: role, Content: content})
}

// History returns a copy of the conversation so far.
func (s *Session) History() []domain.Message {
	out := make([]domain.Message, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory drops the conversation while keeping the document.
func (s *Session) ClearHistory() { s.history = nil }
