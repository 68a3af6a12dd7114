// Package loader parses a PDF into one text unit per page, attaching
// stable page indices and provenance metadata.
package loader

import (
	"fmt"
	"path/filepath"

	"github.com/ledongthuc/pdf"

	"pdfassist/internal/domain"
)

// Load reads a PDF and returns one Page per physical page, in order.
// Blank pages are kept as empty-text pages so that page counts and
// page-offset arithmetic stay correct. A file that cannot be parsed as
// a PDF yields an error wrapping domain.ErrParseDocument.
func Load(path string) (pages []domain.Page, err error) {
	// The pdf package panics on some malformed files; a parse failure
	// must surface as an error, never crash the session.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %s: %v", domain.ErrParseDocument, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParseDocument, path, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	name := filepath.Base(path)

	total := r.NumPage()
	pages = make([]domain.Page, 0, total)
	for i := 1; i <= total; i++ {
		text := ""
		p := r.Page(i)
		if !p.V.IsNull() {
			// Extraction failures on a single page degrade to an empty
			// page instead of dropping it.
			if t, err := p.GetPlainText(nil); err == nil {
				text = t
			}
		}
		pages = append(pages, domain.Page{
			Index:      i - 1,
			Text:       text,
			SourceName: name,
			SourcePath: abs,
		})
	}
	return pages, nil
}
