package validation

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a human title: lowercase,
// hyphen-separated, punctuation stripped. The derivation is
// deterministic so the same title always yields the same slug.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
