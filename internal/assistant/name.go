package assistant

import (
	"strings"
	"unicode"

	"pdfassist/internal/locale"
)

// FirstName extracts a user's first name from a free-form introduction
// such as "Hi, I'm Jonas, nice to meet you". It scans the
// self-introduction phrases of every configured language, takes the
// text after the first matching phrase (or the whole input when none
// matches), skips greeting words and returns the first remaining
// token. Best-effort: returns "" when nothing usable remains.
func FirstName(text string, locales *locale.Table) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	norm := make([]string, len(words))
	for i, w := range words {
		norm[i] = locale.Normalize(trimPunct(w))
	}

	start := 0
	for _, code := range locales.Languages() {
		lang := locales.Lang(code)
		for _, phrase := range lang.IntroPhrases {
			if at := phraseEnd(norm, phrase); at > start {
				start = at
			}
		}
	}

	greetings := map[string]struct{}{}
	for _, code := range locales.Languages() {
		for _, g := range locales.Lang(code).GreetingWords {
			greetings[locale.Normalize(g)] = struct{}{}
		}
	}

	for i := start; i < len(words); i++ {
		token := trimPunct(words[i])
		if token == "" {
			continue
		}
		if _, ok := greetings[norm[i]]; ok {
			continue
		}
		return token
	}
	return ""
}

// phraseEnd returns the word index just past the first occurrence of
// phrase in the normalized word sequence, or 0 when absent.
func phraseEnd(norm []string, phrase string) int {
	parts := strings.Fields(locale.Normalize(phrase))
	if len(parts) == 0 || len(parts) > len(norm) {
		return 0
	}
	for i := 0; i+len(parts) <= len(norm); i++ {
		match := true
		for j, p := range parts {
			if norm[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return i + len(parts)
		}
	}
	return 0
}

func trimPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
