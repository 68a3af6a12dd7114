// Package chunker splits page text into overlapping windows sized for
// embedding and retrieval.
package chunker

import (
	"strings"
	"unicode/utf8"

	"pdfassist/internal/domain"
)

// Default window parameters, tuned for book-sized PDFs.
const (
	DefaultWindowSize = 1200
	DefaultOverlap    = 200
)

// Separators tried in order: paragraph, line, word, then raw rune cuts.
var separators = []string{"\n\n", "\n", " ", ""}

// RecursiveSplitter splits text preferring paragraph boundaries, then
// lines, then words, falling back to raw rune cuts only when no finer
// separator fits within the window. Lengths are measured in runes.
type RecursiveSplitter struct {
	windowSize int
	overlap    int
}

// NewRecursiveSplitter creates a splitter with the given window size
// and overlap, clamping invalid values to sane defaults.
func NewRecursiveSplitter(windowSize, overlap int) *RecursiveSplitter {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= windowSize {
		overlap = windowSize / 4
	}
	return &RecursiveSplitter{windowSize: windowSize, overlap: overlap}
}

// Split chunks each page independently so chunks never merge unrelated
// pages. Empty pages produce no chunks.
func (s *RecursiveSplitter) Split(pages []domain.Page) []domain.Chunk {
	var chunks []domain.Chunk
	for _, p := range pages {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		for _, w := range s.split(text, separators) {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			chunks = append(chunks, domain.Chunk{
				Text:       w,
				Page:       p.Index,
				SourceName: p.SourceName,
				SourcePath: p.SourcePath,
			})
		}
	}
	return chunks
}

func (s *RecursiveSplitter) split(text string, seps []string) []string {
	sep := ""
	rest := []string(nil)
	for i, candidate := range seps {
		if candidate == "" {
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return s.cut(text)
	}

	var out []string
	var fitting []string
	for _, part := range strings.Split(text, sep) {
		if utf8.RuneCountInString(part) <= s.windowSize {
			fitting = append(fitting, part)
			continue
		}
		// An oversized part interrupts the merge run and recurses to a
		// finer separator.
		out = append(out, s.merge(fitting, sep)...)
		fitting = nil
		out = append(out, s.split(part, rest)...)
	}
	return append(out, s.merge(fitting, sep)...)
}

// merge greedily joins fitting parts into windows, retaining trailing
// parts up to the overlap budget between consecutive windows.
func (s *RecursiveSplitter) merge(parts []string, sep string) []string {
	sepLen := utf8.RuneCountInString(sep)
	joined := func(count, sum int) int {
		if count <= 1 {
			return sum
		}
		return sum + (count-1)*sepLen
	}
	var docs []string
	var current []string
	sum := 0
	for _, p := range parts {
		plen := utf8.RuneCountInString(p)
		if len(current) > 0 && joined(len(current)+1, sum+plen) > s.windowSize {
			if doc := strings.TrimSpace(strings.Join(current, sep)); doc != "" {
				docs = append(docs, doc)
			}
			// Keep a tail within the overlap budget that still leaves
			// room for the incoming part.
			for len(current) > 0 && (sum > s.overlap || joined(len(current)+1, sum+plen) > s.windowSize) {
				sum -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, p)
		sum += plen
	}
	if doc := strings.TrimSpace(strings.Join(current, sep)); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

// cut slices text into raw rune windows stepping by windowSize-overlap.
func (s *RecursiveSplitter) cut(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := s.windowSize - s.overlap
	if step <= 0 {
		step = s.windowSize
	}
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + s.windowSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
