package domain

import "context"

// Page represents one PDF page as ingested text plus metadata.
// The ordered sequence of pages for a document always has length equal
// to the PDF's page count; Index equals the position in that sequence.
type Page struct {
	Index      int
	Text       string
	SourceName string
	SourcePath string
}

// Chunk is a sub-page text window used for retrieval granularity finer
// than a whole page. Provenance fields are inherited from the page it
// was derived from.
type Chunk struct {
	Text       string
	Page       int
	SourceName string
	SourcePath string
}

// Scored represents a matching chunk with a relevance score.
type Scored struct {
	Chunk Chunk
	Score float64
}

// Embedder converts texts into numeric vector representations,
// one vector per input text, same order.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Chunker splits pages into chunks suitable for retrieval indexing.
type Chunker interface {
	Split(pages []Page) []Chunk
}

// Index answers top-k relevance queries over the chunks it was built
// from. Built once per document and read-only afterward.
type Index interface {
	Kind() string
	Query(ctx context.Context, text string, k int) []Scored
}

// Message is a single turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Completer is the external text-completion service.
type Completer interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}
