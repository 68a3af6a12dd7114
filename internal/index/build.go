// Package index builds the per-document retrieval index: a semantic
// vector variant when an embedding provider is available, a lexical
// BM25 variant otherwise. Both answer the same top-k query contract.
package index

import (
	"context"

	"go.uber.org/zap"

	"pdfassist/internal/domain"
)

// Build constructs the index for a document. It attempts the semantic
// variant first; absence of an embedding provider or any failure while
// building vectors selects the lexical variant instead; embedding
// trouble is never fatal to indexing.
func Build(ctx context.Context, chunks []domain.Chunk, embedder domain.Embedder, log *zap.Logger) domain.Index {
	lexical := NewLexical(chunks)
	if embedder == nil {
		log.Info("no embedding provider configured, using lexical index")
		return lexical
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := embedder.Embed(ctx, texts)
	if err != nil || len(vectors) != len(chunks) {
		log.Warn("embedding failed, falling back to lexical index",
			zap.String("provider", embedder.Name()), zap.Error(err))
		return lexical
	}
	for i, v := range vectors {
		vectors[i] = normalized(v)
	}
	log.Info("semantic index built",
		zap.String("provider", embedder.Name()), zap.Int("chunks", len(chunks)))
	return &Semantic{
		chunks:   chunks,
		vectors:  vectors,
		embedder: embedder,
		fallback: lexical,
	}
}
