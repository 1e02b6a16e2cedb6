package convert

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entractl/internal/domain"
)

func TestMailNickname(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Sales", want: "Sales"},
		{name: "spaces and punctuation", in: "Contoso  Sales!! Team", want: "Contoso.Sales.Team"},
		{name: "leading digit gets prefix", in: "123-Team", want: "grp.123.Team"},
		{name: "leading separator trimmed", in: "--Sales--", want: "Sales"},
		{name: "unicode stripped", in: "Vertrieb München", want: "Vertrieb.M.nchen"},
		{name: "all junk", in: "!!!", want: "grp"},
		{name: "empty", in: "", want: "grp"},
		{name: "mixed alnum", in: "Team 42 (EU)", want: "Team.42.EU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MailNickname(tt.in))
		})
	}
}

func TestMailNickname_Truncation(t *testing.T) {
	long := strings.Repeat("ab ", 60)
	got := MailNickname(long)
	assert.LessOrEqual(t, len(got), domain.MaxNicknameLen)
	assert.False(t, strings.HasSuffix(got, "."), "truncation must not leave a trailing separator")
}

// Every derived nickname satisfies the grammar the directory accepts.
func TestMailNickname_Grammar(t *testing.T) {
	grammar := regexp.MustCompile(`^[A-Za-z](\.?[A-Za-z0-9])*$`)
	inputs := []string{
		"Sales", "Contoso  Sales!! Team", "123-Team", "--Sales--", "!!!",
		"", "a", "9", ". . .", "Ärzte Team", strings.Repeat("x!", 200),
	}
	for _, in := range inputs {
		got := MailNickname(in)
		assert.Regexp(t, grammar, got, "input %q", in)
		assert.LessOrEqual(t, len(got), domain.MaxNicknameLen, "input %q", in)
		require.NoError(t, domain.ValidateMailNickname(got), "input %q", in)
	}
}

// Deriving a nickname from its own output is a fixed point.
func TestMailNickname_Idempotent(t *testing.T) {
	inputs := []string{
		"Contoso  Sales!! Team", "123-Team", "!!!", "Sales", strings.Repeat("ab ", 60),
	}
	for _, in := range inputs {
		once := MailNickname(in)
		assert.Equal(t, once, MailNickname(once), "input %q", in)
	}
}
