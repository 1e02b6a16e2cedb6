// Package convert implements security-group conversion: nickname
// derivation, group resolution, conflict detection, and membership
// reconciliation against an existing target group.
package convert

import (
	"strings"

	"entractl/internal/domain"
)

// nicknamePrefix is prepended when a derived nickname would not start
// with a letter.
const nicknamePrefix = "grp"

// MailNickname derives a mail nickname from a display name: characters
// outside [A-Za-z0-9] become dots, separator runs collapse to one,
// leading and trailing separators are trimmed, a "grp." prefix is added
// when the first character is not a letter, and the result is truncated
// to the directory's maximum nickname length. The derivation is
// deterministic and idempotent.
func MailNickname(displayName string) string {
	var b strings.Builder
	b.Grow(len(displayName))
	pendingSep := false
	for _, r := range displayName {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('.')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}

	s := b.String()
	if s == "" {
		return nicknamePrefix
	}
	if c := s[0]; !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
		s = nicknamePrefix + "." + s
	}
	if len(s) > domain.MaxNicknameLen {
		s = strings.TrimRight(s[:domain.MaxNicknameLen], ".")
	}
	return s
}
