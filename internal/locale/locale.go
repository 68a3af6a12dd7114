// Package locale holds the per-language string templates, page-reference
// patterns and keyword lists consumed by the assistant. The tables live
// in an embedded YAML resource so the core never hardcodes locale text.
package locale

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales.yaml
var localesYAML []byte

// DefaultLanguage is used when a requested language is not configured.
const DefaultLanguage = "pt"

// Intents groups the keyword lists for structural questions that bypass
// retrieval entirely.
type Intents struct {
	PageCount []string `yaml:"page_count"`
	FileName  []string `yaml:"file_name"`
}

// Prompts are the chat templates for one language.
type Prompts struct {
	System      string `yaml:"system"`
	QA          string `yaml:"qa"`
	Task        string `yaml:"task"`
	WelcomeUser string `yaml:"welcome_user"`
}

// Lang is the full string table for one language.
type Lang struct {
	PagePatterns  []string          `yaml:"page_patterns"`
	Intents       Intents           `yaml:"intents"`
	IntroPhrases  []string          `yaml:"intro_phrases"`
	GreetingWords []string          `yaml:"greeting_words"`
	Messages      map[string]string `yaml:"messages"`
	Prompts       Prompts           `yaml:"prompts"`
	Tasks         map[string]string `yaml:"tasks"`

	patterns []*regexp.Regexp
}

// Table maps language codes to their string tables.
type Table struct {
	langs map[string]*Lang
}

// Load parses the embedded locale tables and compiles page patterns.
func Load() (*Table, error) {
	langs := map[string]*Lang{}
	if err := yaml.Unmarshal(localesYAML, &langs); err != nil {
		return nil, fmt.Errorf("parse locale tables: %w", err)
	}
	if _, ok := langs[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("locale tables missing default language %q", DefaultLanguage)
	}
	for code, l := range langs {
		for _, p := range l.PagePatterns {
			// Patterns are matched against normalized text, so the
			// pattern itself is normalized too.
			re, err := regexp.Compile("(?i)" + Normalize(p))
			if err != nil {
				return nil, fmt.Errorf("compile page pattern %q (%s): %w", p, code, err)
			}
			l.patterns = append(l.patterns, re)
		}
	}
	return &Table{langs: langs}, nil
}

// Languages returns the configured language codes, sorted.
func (t *Table) Languages() []string {
	out := make([]string, 0, len(t.langs))
	for code := range t.langs {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Lang returns the table for a language code, falling back to the
// default language when the code is unknown.
func (t *Table) Lang(code string) *Lang {
	if l, ok := t.langs[code]; ok {
		return l
	}
	return t.langs[DefaultLanguage]
}

// Patterns returns the compiled page-reference patterns.
func (l *Lang) Patterns() []*regexp.Regexp { return l.patterns }

// Message renders a message template, replacing {key} placeholders.
func (l *Lang) Message(key string, vars map[string]string) string {
	return Render(l.Messages[key], vars)
}

// Task renders a quick-task instruction template.
func (l *Lang) Task(key string, vars map[string]string) string {
	return Render(l.Tasks[key], vars)
}

// Render substitutes {key} placeholders in a template.
func Render(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
