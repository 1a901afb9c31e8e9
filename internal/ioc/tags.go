package ioc

import (
	"strings"
)

// SanitizeTags trims, strips disallowed characters, truncates to
// maxLength and deduplicates (case-insensitively) a raw tag list,
// dropping anything that's empty after cleanup.
func SanitizeTags(tags []string, maxLength int) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		tag = stripSpecial(tag)
		if len(tag) > maxLength {
			tag = tag[:maxLength]
		}
		if tag == "" {
			continue
		}

		lower := strings.ToLower(tag)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, tag)
	}

	return out
}

// stripSpecial removes everything except word characters, whitespace and
// the small set of punctuation tags commonly carry (- _ : .).
func stripSpecial(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == ':' || r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(r)
		}
	}
	return b.String()
}
