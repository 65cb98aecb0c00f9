package util

import (
	"strings"
)

const (
	slugMaxLen  = 64
	slugDefault = "family"
)

// SanitizeSlug turns arbitrary user input into a URL-safe public slug:
// lowercase, alphanumeric plus hyphens, with runs of anything else collapsed
// to a single hyphen. Degenerate input yields the fixed default so a public
// link is never empty.
func SanitizeSlug(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(raw))
	lastHyphen := true
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > slugMaxLen {
		slug = strings.Trim(slug[:slugMaxLen], "-")
	}
	if slug == "" {
		return slugDefault
	}
	return slug
}
