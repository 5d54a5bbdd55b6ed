package utils

import (
	"strings"
	"unicode"
)

// Slugify turns a title into a URL-safe slug: lowercase, characters outside
// [a-z0-9] and whitespace/hyphens dropped, whitespace runs and hyphen runs
// collapsed to a single hyphen, edge hyphens trimmed. Pure and idempotent,
// so it can safely re-run on every keystroke of a manually edited slug field.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r), r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// ValidSlug reports whether s matches ^[a-z0-9-]+$.
func ValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
