package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pdfassist/internal/domain"
	"pdfassist/internal/session"
)

type noopIndex struct{}

func (noopIndex) Kind() string { return "noop" }

func (noopIndex) Query(context.Context, string, int) []domain.Scored { return nil }

func TestHashBytes(t *testing.T) {
	a := session.HashBytes([]byte("document one"))
	b := session.HashBytes([]byte("document one"))
	c := session.HashBytes([]byte("document two"))
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 64)
}

func TestSameDocumentGating(t *testing.T) {
	s := session.New("pt")
	key := session.HashBytes([]byte("doc"))
	require.False(t, s.SameDocument(key), "empty session matches nothing")

	s.ReplaceDocument(key, []domain.Page{{Index: 0, Text: "x", SourceName: "a.pdf"}}, noopIndex{}, "theme", 1)
	require.True(t, s.SameDocument(key))
	require.False(t, s.SameDocument(session.HashBytes([]byte("other"))))
}

func TestReplaceDocumentClearsHistory(t *testing.T) {
	s := session.New("en")
	s.Append(domain.RoleUser, "hello")
	s.Append(domain.RoleAssistant, "hi")
	require.Len(t, s.History(), 2)

	s.ReplaceDocument("key", []domain.Page{{Index: 0, SourceName: "b.pdf"}}, noopIndex{}, "t", 0)
	require.Empty(t, s.History())
	require.True(t, s.Indexed())
	require.Equal(t, "b.pdf", s.SourceName())
	require.Equal(t, "t", s.Theme())
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := session.New("en")
	s.Append(domain.RoleUser, "original")
	h := s.History()
	h[0].Content = "mutated"
	require.Equal(t, "original", s.History()[0].Content)
}

func TestSetThemeIgnoresEmpty(t *testing.T) {
	s := session.New("en")
	s.ReplaceDocument("k", nil, noopIndex{}, "detected", 0)
	s.SetTheme("")
	require.Equal(t, "detected", s.Theme())
	s.SetTheme("override")
	require.Equal(t, "override", s.Theme())
}

func TestSourceNameEmptyWithoutDocument(t *testing.T) {
	require.Empty(t, session.New("en").SourceName())
}
