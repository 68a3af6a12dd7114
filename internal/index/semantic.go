package index

import (
	"context"
	"math"
	"sort"

	"pdfassist/internal/domain"
)

// Semantic is an in-memory vector index using brute-force cosine
// similarity. Vectors are L2-normalized at build time so similarity is
// a plain dot product. A lexical sibling built from the same chunks
// absorbs query-time embedding failures.
type Semantic struct {
	chunks   []domain.Chunk
	vectors  [][]float64
	embedder domain.Embedder
	fallback *Lexical
}

// Kind identifies the index variant.
func (s *Semantic) Kind() string { return "semantic" }

// Query embeds the query string and ranks chunks by cosine similarity.
// If embedding the query fails, the lexical sibling answers instead;
// a retrieval turn never fails outright.
func (s *Semantic) Query(ctx context.Context, text string, k int) []domain.Scored {
	if len(s.chunks) == 0 || k <= 0 {
		return nil
	}
	vecs, err := s.embedder.Embed(ctx, []string{text})
	if err != nil || len(vecs) != 1 || isZero(vecs[0]) {
		return s.fallback.Query(ctx, text, k)
	}
	query := normalized(vecs[0])

	scores := make([]float64, len(s.vectors))
	for i, v := range s.vectors {
		scores[i] = dot(v, query)
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	if k > len(order) {
		k = len(order)
	}
	out := make([]domain.Scored, 0, k)
	for _, i := range order[:k] {
		out = append(out, domain.Scored{Chunk: s.chunks[i], Score: scores[i]})
	}
	return out
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func normalized(v []float64) []float64 {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
