package assistant_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pdfassist/internal/assistant"
	"pdfassist/internal/locale"
)

func TestFirstName(t *testing.T) {
	table, err := locale.Load()
	require.NoError(t, err)

	cases := []struct {
		in   string
		want string
	}{
		{"Hi, I'm Jonas, nice to meet you", "Jonas"},
		{"my name is Beatriz", "Beatriz"},
		{"Olá, meu nome é Ana Paula", "Ana"},
		{"me chamo Rafael!", "Rafael"},
		{"mi chiamo Giulia", "Giulia"},
		{"pode me chamar de Zé", "Zé"},
		{"Carlos", "Carlos"},
		{"ciao", ""},
		{"hello good morning", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, assistant.FirstName(tc.in, table), "input %q", tc.in)
	}
}
