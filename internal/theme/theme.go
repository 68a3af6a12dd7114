// Package theme heuristically extracts a document title/topic from the
// first pages, used to personalize the tutor prompt. Best-effort and
// total: it never fails and never blocks the pipeline.
package theme

import (
	"regexp"
	"strings"
	"unicode"

	"pdfassist/internal/domain"
	"pdfassist/internal/locale"
)

// Placeholder is returned when no page text exists or no candidate
// line survives filtering.
const Placeholder = "tema do PDF / tema del PDF / theme of the PDF"

const (
	scanPages    = 2
	scanChars    = 1000
	scanLines    = 12
	minLineLen   = 3
	maxLineLen   = 120
	maxCandidate = 2
)

// titleWords are keywords that make a line look like a title, across
// the supported locales.
var titleWords = []string{
	"introduction", "introducao", "introduzione",
	"guide", "guia", "guida",
	"manual", "handbook", "apostila",
	"course", "curso", "corso",
	"tutorial", "edition", "edicao", "edizione",
	"fundamentals", "fundamentos", "fondamenti",
	"principles", "principios", "principi",
	"book", "livro", "libro", "notes",
}

var boilerplate = regexp.MustCompile(`(?i)(@|https?://|www\.|tel[.: ]|fax[.: ]|cep[.: ]|caixa postal|p\.?o\.? box|\brua\b|\bvia\b|\bavenida\b|\bstreet\b|\d{4,}[-.\s]\d{3,})`)

// Detect returns a short theme string for the document.
func Detect(pages []domain.Page) string {
	base := firstText(pages)
	if base == "" {
		return Placeholder
	}

	lines := candidateLines(base)
	type scored struct {
		line  string
		score int
	}
	var best []scored
	for _, ln := range lines {
		if s := titleScore(ln); s > 0 {
			best = append(best, scored{ln, s})
		}
	}
	var picked []string
	if len(best) > 0 {
		// Stable selection: keep document order, take the highest
		// scoring lines.
		threshold := 0
		for _, b := range best {
			if b.score > threshold {
				threshold = b.score
			}
		}
		for _, b := range best {
			if len(picked) == maxCandidate {
				break
			}
			if b.score == threshold || len(best) <= maxCandidate {
				picked = append(picked, b.line)
			}
		}
	} else {
		// Fall back to any sufficiently sentence-like capitalized line.
		for _, ln := range lines {
			if sentenceLike(ln) {
				picked = append(picked, ln)
				if len(picked) == maxCandidate {
					break
				}
			}
		}
	}
	if len(picked) == 0 {
		return Placeholder
	}
	return strings.Join(picked, " • ")
}

func firstText(pages []domain.Page) string {
	var parts []string
	for i := 0; i < len(pages) && i < scanPages; i++ {
		t := strings.TrimSpace(pages[i].Text)
		if t != "" {
			parts = append(parts, t)
		}
	}
	base := strings.Join(parts, "\n")
	runes := []rune(base)
	if len(runes) > scanChars {
		base = string(runes[:scanChars])
	}
	return base
}

func candidateLines(base string) []string {
	var out []string
	for _, ln := range strings.Split(base, "\n") {
		if len(out) == scanLines {
			break
		}
		ln = strings.TrimSpace(ln)
		if ln == "" || noisy(ln) {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func noisy(line string) bool {
	runes := []rune(line)
	if len(runes) < minLineLen || len(runes) > maxLineLen {
		return true
	}
	alnum, run, maxRun := 0, 1, 1
	var prev rune
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			alnum++
		}
		if i > 0 && r == prev {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 1
		}
		prev = r
	}
	if alnum*2 < len(runes) {
		return true
	}
	if maxRun*2 >= len(runes) {
		return true
	}
	return boilerplate.MatchString(line)
}

func titleScore(line string) int {
	norm := locale.Normalize(line)
	score := 0
	for _, w := range titleWords {
		if strings.Contains(norm, w) {
			score += 2
		}
	}
	return score
}

func sentenceLike(line string) bool {
	first, _ := utf8DecodeFirst(line)
	return unicode.IsUpper(first) && len(strings.Fields(line)) >= 2
}

func utf8DecodeFirst(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
