package validators

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify turns "José da Silva" into "jose-da-silva".
func Slugify(s string) string {
	var b strings.Builder
	dash := false

	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// acento separado pela decomposição
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// IsSlugValid aceita apenas o formato produzido por Slugify.
func IsSlugValid(slug string) bool {
	return slug != "" && Slugify(slug) == slug
}
