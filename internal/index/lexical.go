package index

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"pdfassist/internal/domain"
)

// BM25 parameters.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Lexical ranks chunks with BM25 term-frequency scoring. It is the
// fallback when no embedding provider is available and requires no
// network access.
type Lexical struct {
	chunks  []domain.Chunk
	termFns []map[string]int
	docLens []int
	avgLen  float64
	docFreq map[string]int
}

// NewLexical builds a BM25 index over the given chunks.
func NewLexical(chunks []domain.Chunk) *Lexical {
	l := &Lexical{
		chunks:  chunks,
		termFns: make([]map[string]int, len(chunks)),
		docLens: make([]int, len(chunks)),
		docFreq: make(map[string]int),
	}
	totalLen := 0
	for i, ch := range chunks {
		tokens := tokenize(ch.Text)
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		for t := range tf {
			l.docFreq[t]++
		}
		l.termFns[i] = tf
		l.docLens[i] = len(tokens)
		totalLen += len(tokens)
	}
	if len(chunks) > 0 {
		l.avgLen = float64(totalLen) / float64(len(chunks))
	}
	return l
}

// Kind identifies the index variant.
func (l *Lexical) Kind() string { return "lexical" }

// Query returns the top-k chunks by BM25 score, most relevant first.
// Ties keep the original chunk order.
func (l *Lexical) Query(_ context.Context, text string, k int) []domain.Scored {
	if len(l.chunks) == 0 || k <= 0 {
		return nil
	}
	queryTerms := tokenize(text)
	if len(queryTerms) == 0 {
		return nil
	}
	n := float64(len(l.chunks))
	scores := make([]float64, len(l.chunks))
	for _, term := range queryTerms {
		df, ok := l.docFreq[term]
		if !ok {
			continue
		}
		idf := math.Log(1 + (n-float64(df)+0.5)/(float64(df)+0.5))
		for i, tf := range l.termFns {
			f := float64(tf[term])
			if f == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(l.docLens[i])/l.avgLen
			scores[i] += idf * (f * (bm25K1 + 1)) / (f + bm25K1*norm)
		}
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	out := make([]domain.Scored, 0, k)
	for _, i := range order {
		if scores[i] <= 0 || len(out) == k {
			break
		}
		out = append(out, domain.Scored{Chunk: l.chunks[i], Score: scores[i]})
	}
	return out
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
