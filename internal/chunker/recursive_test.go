package chunker_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"pdfassist/internal/chunker"
	"pdfassist/internal/domain"
)

func TestSplitShortPage(t *testing.T) {
	s := chunker.NewRecursiveSplitter(1200, 200)
	pages := []domain.Page{{Index: 3, Text: "  A short page about pumps.  ", SourceName: "doc.pdf"}}

	chunks := s.Split(pages)
	require.Len(t, chunks, 1)
	require.Equal(t, "A short page about pumps.", chunks[0].Text)
	require.Equal(t, 3, chunks[0].Page)
	require.Equal(t, "doc.pdf", chunks[0].SourceName)
}

func TestSplitSkipsEmptyPages(t *testing.T) {
	s := chunker.NewRecursiveSplitter(100, 20)
	pages := []domain.Page{
		{Index: 0, Text: "content"},
		{Index: 1, Text: "   \n\n  "},
		{Index: 2, Text: "more content"},
	}

	chunks := s.Split(pages)
	require.Len(t, chunks, 2)
	require.Equal(t, 0, chunks[0].Page)
	require.Equal(t, 2, chunks[1].Page)
}

func TestSplitRespectsWindowBound(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("palavra ")
		if i%20 == 19 {
			b.WriteString("\n\n")
		}
	}
	s := chunker.NewRecursiveSplitter(80, 16)
	chunks := s.Split([]domain.Page{{Index: 0, Text: b.String()}})

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		require.LessOrEqual(t, utf8.RuneCountInString(c.Text), 80)
	}
}

func TestSplitPagesNeverMerge(t *testing.T) {
	s := chunker.NewRecursiveSplitter(1200, 200)
	pages := []domain.Page{
		{Index: 0, Text: "first page"},
		{Index: 1, Text: "second page"},
	}

	chunks := s.Split(pages)
	require.Len(t, chunks, 2)
	require.NotContains(t, chunks[0].Text, "second")
	require.NotContains(t, chunks[1].Text, "first")
}

func TestSplitCarriesOverlap(t *testing.T) {
	words := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		words = append(words, "w"+strings.Repeat("x", 3))
	}
	text := strings.Join(words, " ")
	s := chunker.NewRecursiveSplitter(50, 15)

	chunks := s.Split([]domain.Page{{Index: 0, Text: text}})
	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prevTail := lastWords(chunks[i-1].Text, 1)
		require.True(t, strings.HasPrefix(chunks[i].Text, prevTail),
			"chunk %d should start with the tail of chunk %d", i, i-1)
	}
}

func TestSplitRawCutsWithoutSeparators(t *testing.T) {
	text := strings.Repeat("a", 25)
	s := chunker.NewRecursiveSplitter(10, 2)

	chunks := s.Split([]domain.Page{{Index: 0, Text: text}})
	require.NotEmpty(t, chunks)
	total := 0
	for _, c := range chunks {
		n := utf8.RuneCountInString(c.Text)
		require.LessOrEqual(t, n, 10)
		total += n
	}
	// Raw cuts overlap, so total coverage meets or exceeds the input.
	require.GreaterOrEqual(t, total, 25)
}

func TestSplitIdempotent(t *testing.T) {
	page := []domain.Page{{Index: 0, Text: "para one\n\npara two\n\npara three"}}
	s := chunker.NewRecursiveSplitter(12, 4)

	first := s.Split(page)
	second := s.Split(page)
	require.Equal(t, first, second)
}

func lastWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) < n {
		return s
	}
	return strings.Join(fields[len(fields)-n:], " ")
}
