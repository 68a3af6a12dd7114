package index_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pdfassist/internal/domain"
	"pdfassist/internal/index"
)

func corpus() []domain.Chunk {
	return []domain.Chunk{
		{Text: "The gas turbine converts fuel into rotational energy.", Page: 14},
		{Text: "Cooling circuits keep the bearings within temperature limits.", Page: 20},
		{Text: "Maintenance schedules are listed in the appendix.", Page: 33},
		{Text: "The turbine rotor and the turbine casing need alignment.", Page: 15},
	}
}

func TestLexicalRanksVerbatimTerms(t *testing.T) {
	idx := index.NewLexical(corpus())
	require.Equal(t, "lexical", idx.Kind())

	hits := idx.Query(context.Background(), "turbine alignment", 6)
	require.NotEmpty(t, hits)
	require.Equal(t, 15, hits[0].Chunk.Page)
	for _, h := range hits {
		require.Greater(t, h.Score, 0.0)
	}
}

func TestLexicalExcludesZeroScores(t *testing.T) {
	idx := index.NewLexical(corpus())
	hits := idx.Query(context.Background(), "appendix", 6)
	require.Len(t, hits, 1)
	require.Equal(t, 33, hits[0].Chunk.Page)
}

func TestLexicalUnknownTerm(t *testing.T) {
	idx := index.NewLexical(corpus())
	require.Empty(t, idx.Query(context.Background(), "zzzuncommon", 6))
}

func TestLexicalHonorsK(t *testing.T) {
	idx := index.NewLexical(corpus())
	hits := idx.Query(context.Background(), "the turbine", 1)
	require.Len(t, hits, 1)
}

func TestLexicalEmptyInputs(t *testing.T) {
	idx := index.NewLexical(nil)
	require.Empty(t, idx.Query(context.Background(), "anything", 6))

	idx = index.NewLexical(corpus())
	require.Empty(t, idx.Query(context.Background(), "", 6))
	require.Empty(t, idx.Query(context.Background(), "turbine", 0))
}

func TestLexicalDiacriticsTokenizeSeparately(t *testing.T) {
	idx := index.NewLexical([]domain.Chunk{
		{Text: "A página inicial descreve o propósito do manual.", Page: 0},
	})
	hits := idx.Query(context.Background(), "página", 3)
	require.Len(t, hits, 1)
}
