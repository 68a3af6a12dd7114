// Package intent classifies structural questions that need no document
// retrieval: the page count and the file name are answered directly
// from session metadata, short-circuiting the pipeline.
package intent

import (
	"strings"

	"pdfassist/internal/locale"
)

// Intent is a structural question category.
type Intent int

const (
	Normal Intent = iota
	PageCount
	FileName
)

func (i Intent) String() string {
	switch i {
	case PageCount:
		return "page_count"
	case FileName:
		return "file_name"
	}
	return "normal"
}

// Classify matches the normalized question against the language's
// keyword lists. Normal is the default when nothing matches. Callers
// must check this before invoking retrieval.
func Classify(question string, lang *locale.Lang) Intent {
	norm := locale.Normalize(question)
	if containsAny(norm, lang.Intents.PageCount) {
		return PageCount
	}
	if containsAny(norm, lang.Intents.FileName) {
		return FileName
	}
	return Normal
}

func containsAny(norm string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(norm, locale.Normalize(kw)) {
			return true
		}
	}
	return false
}
