// Package retrieval decides between page-direct lookup and index-backed
// retrieval, expands neighbor pages, and compacts the result into a
// bounded context string for the completion prompt.
package retrieval

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"pdfassist/internal/domain"
	"pdfassist/internal/locale"
)

// Retrieval parameters. K is clamped to [MinK, MaxK] when adjusted by
// the user; the context budget is a character proxy for the completion
// service's token ceiling.
const (
	DefaultK             = 6
	MinK                 = 3
	MaxK                 = 10
	MaxNeighborRadius    = 2
	DefaultContextBudget = 5200
)

// unitSeparator joins context units in the compacted string.
const unitSeparator = "\n\n---\n\n"

// Unit is one piece of assembled context: a whole page on the
// page-direct path, a chunk on the index path.
type Unit struct {
	Text   string
	Page   int
	Source string
}

// Citation points the user at the provenance of a context unit.
// Page is 1-based for display.
type Citation struct {
	Page   int
	Source string
}

// Options controls one assembly.
type Options struct {
	K              int
	NeighborRadius int
	ContextBudget  int
	ForcedPage     *int
	Patterns       []*regexp.Regexp
}

// Result is the ephemeral outcome of one query.
type Result struct {
	Units        []Unit
	Citations    []Citation
	ResolvedPage *int
	Context      string
}

// ClampK bounds a user-adjustable k to a sane range, defaulting when
// unset.
func ClampK(k int) int {
	switch {
	case k == 0:
		return DefaultK
	case k < MinK:
		return MinK
	case k > MaxK:
		return MaxK
	}
	return k
}

// ParsePageRef scans a question for a locale page reference such as
// "page 10" or "pag. 10". The first matching pattern wins; the captured
// number is 1-based and converted to a 0-based index, floored at 0.
// Returns nil when no pattern matches.
func ParsePageRef(question string, patterns []*regexp.Regexp) *int {
	if question == "" {
		return nil
	}
	norm := locale.Normalize(question)
	for _, re := range patterns {
		m := re.FindStringSubmatch(norm)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		p := n - 1
		if p < 0 {
			p = 0
		}
		return &p
	}
	return nil
}

// Assemble builds the retrieval context for one turn.
//
// A forced page, or a page reference parsed from the question, selects
// the page-direct path: the contiguous page slice around the resolved
// page, clipped to document bounds. An out-of-range page is an error,
// never a silent fall-through to index retrieval. Without a page
// reference the index answers. An empty or all-blank context is
// reported before compaction, since compacting nothing is
// indistinguishable from finding nothing.
func Assemble(ctx context.Context, question string, pages []domain.Page, idx domain.Index, opts Options) (*Result, error) {
	resolved := opts.ForcedPage
	if resolved == nil {
		resolved = ParsePageRef(question, opts.Patterns)
	}

	var units []Unit
	if resolved != nil {
		p := *resolved
		if p < 0 || p >= len(pages) {
			return nil, &domain.PageOutOfRangeError{Page: p, Total: len(pages)}
		}
		radius := opts.NeighborRadius
		if radius < 0 {
			radius = 0
		}
		if radius > MaxNeighborRadius {
			radius = MaxNeighborRadius
		}
		start := p - radius
		if start < 0 {
			start = 0
		}
		end := p + radius
		if end > len(pages)-1 {
			end = len(pages) - 1
		}
		for _, page := range pages[start : end+1] {
			units = append(units, Unit{Text: page.Text, Page: page.Index, Source: page.SourceName})
		}
	} else {
		for _, hit := range idx.Query(ctx, question, ClampK(opts.K)) {
			units = append(units, Unit{Text: hit.Chunk.Text, Page: hit.Chunk.Page, Source: hit.Chunk.SourceName})
		}
	}

	if !hasText(units) {
		return nil, domain.ErrNoRelevantContent
	}

	budget := opts.ContextBudget
	if budget <= 0 {
		budget = DefaultContextBudget
	}
	citations := make([]Citation, 0, len(units))
	for _, u := range units {
		citations = append(citations, Citation{Page: u.Page + 1, Source: u.Source})
	}
	return &Result{
		Units:        units,
		Citations:    citations,
		ResolvedPage: resolved,
		Context:      Compact(units, budget),
	}, nil
}

// Head returns the leading units that fit the budget whole, skipping
// blank units. Document-level tasks use this instead of an index
// query, since a task label is not a searchable question.
func Head(units []Unit, budget int) []Unit {
	if budget <= 0 {
		budget = DefaultContextBudget
	}
	var out []Unit
	total := 0
	for _, u := range units {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		n := utf8.RuneCountInString(text)
		if total+n > budget {
			if len(out) == 0 {
				// A first unit larger than the whole budget is truncated
				// rather than dropped, so there is always some context.
				runes := []rune(text)
				u.Text = string(runes[:budget])
				out = append(out, u)
			}
			break
		}
		out = append(out, u)
		total += n
	}
	return out
}

// Compact concatenates unit texts in order, stopping before the unit
// that would push the accumulated length past the budget. Units are
// included whole or not at all.
func Compact(units []Unit, budget int) string {
	var parts []string
	total := 0
	for _, u := range units {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		n := utf8.RuneCountInString(text)
		if total+n > budget {
			break
		}
		parts = append(parts, text)
		total += n
	}
	return strings.Join(parts, unitSeparator)
}

func hasText(units []Unit) bool {
	for _, u := range units {
		if strings.TrimSpace(u.Text) != "" {
			return true
		}
	}
	return false
}
