// Package sanitize derives the display form of player-chosen names. The rule
// is deterministic: every replica computes the identical filtered name from
// the same input, so the acting client rendering its own raw name while
// everyone else renders the filtered one is a presentation asymmetry only;
// it never touches gameplay state.
package sanitize

import "strings"

const MaxNameLen = 27

const fallbackName = "Anon"

// Masked terms. Matching is case-insensitive on the collapsed name.
var blockedTerms = []string{
	"admin",
	"moderator",
	"system",
	"fuck",
	"shit",
	"cunt",
	"bitch",
	"nigger",
	"faggot",
	"hitler",
}

// DisplayName clamps, strips disallowed runes, and masks blocked terms.
// Empty results fall back to a fixed placeholder.
func DisplayName(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if !allowedRune(r) {
			continue
		}
		b.WriteRune(r)
		if b.Len() >= MaxNameLen {
			break
		}
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		return fallbackName
	}
	lower := strings.ToLower(name)
	for _, term := range blockedTerms {
		for {
			i := strings.Index(lower, term)
			if i < 0 {
				break
			}
			name = name[:i] + strings.Repeat("*", len(term)) + name[i+len(term):]
			lower = lower[:i] + strings.Repeat("*", len(term)) + lower[i+len(term):]
		}
	}
	return name
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '_', r == '-', r == '.', r == '[', r == ']':
		return true
	}
	return false
}
