package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pdfassist/internal/locale"
)

func TestLoadLanguages(t *testing.T) {
	table, err := locale.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"en", "it", "pt"}, table.Languages())
}

func TestLangFallsBackToDefault(t *testing.T) {
	table, err := locale.Load()
	require.NoError(t, err)
	require.Same(t, table.Lang(locale.DefaultLanguage), table.Lang("de"))
}

func TestPatternsMatchNormalizedText(t *testing.T) {
	table, err := locale.Load()
	require.NoError(t, err)

	pt := table.Lang("pt")
	require.NotEmpty(t, pt.Patterns())
	matched := false
	for _, re := range pt.Patterns() {
		if m := re.FindStringSubmatch(locale.Normalize("Veja a Página 12")); len(m) > 1 {
			require.Equal(t, "12", m[1])
			matched = true
			break
		}
	}
	require.True(t, matched)
}

func TestMessageRendering(t *testing.T) {
	table, err := locale.Load()
	require.NoError(t, err)

	en := table.Lang("en")
	msg := en.Message("page_not_exist", map[string]string{"page": "99", "total": "12"})
	require.Contains(t, msg, "99")
	require.Contains(t, msg, "12")

	task := en.Task("page_summary", map[string]string{"page": "7"})
	require.Contains(t, task, "7")
}

func TestEveryLanguageHasCoreStrings(t *testing.T) {
	table, err := locale.Load()
	require.NoError(t, err)

	keys := []string{"welcome", "first_reply", "page_not_exist", "not_found",
		"page_count", "file_name", "completion_failed", "sources", "indexed"}
	tasks := []string{"page_summary", "doc_summary", "glossary", "faq", "study_plan", "exercises"}
	for _, code := range table.Languages() {
		lang := table.Lang(code)
		for _, k := range keys {
			require.NotEmpty(t, lang.Messages[k], "%s missing message %s", code, k)
		}
		for _, k := range tasks {
			require.NotEmpty(t, lang.Tasks[k], "%s missing task %s", code, k)
		}
		require.NotEmpty(t, lang.Prompts.System, "%s missing system prompt", code)
		require.NotEmpty(t, lang.Prompts.QA, "%s missing qa prompt", code)
		require.NotEmpty(t, lang.Prompts.Task, "%s missing task prompt", code)
		require.NotEmpty(t, lang.Prompts.WelcomeUser, "%s missing welcome prompt", code)
		require.NotEmpty(t, lang.Patterns(), "%s missing page patterns", code)
	}
}

func TestRender(t *testing.T) {
	require.Equal(t, "hello Ana", locale.Render("hello {name}", map[string]string{"name": "Ana"}))
	require.Equal(t, "plain", locale.Render("plain", nil))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "pagina", locale.Normalize("Página"))
	require.Equal(t, "introducao", locale.Normalize("INTRODUÇÃO"))
	require.Equal(t, "gia", locale.Normalize("già"))
}
