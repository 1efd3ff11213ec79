// Package normalize turns free text into filesystem-safe slugs and
// single-line YAML scalars.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thomas-vilte/issue-export/internal/regex"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlugLength is the slug length used for issue filenames.
const DefaultSlugLength = 60

// FallbackSlug replaces a slug that ends up empty.
const FallbackSlug = "issue"

// yamlReserved lists the characters that force a scalar into double quotes.
const yamlReserved = ":#{}[],&*?|>-@`\"'\n"

// Slugify returns a lowercase slug made of ASCII letters, digits and single
// hyphens, at most maxLength bytes long. Accented letters are reduced to
// their base letter, other non-ASCII runes are dropped. A non-positive
// maxLength disables truncation. The result is never empty.
func Slugify(text string, maxLength int) string {
	ascii := stripNonASCII(norm.NFKD.String(text))

	slug := regex.NonAlphanumericRun.ReplaceAllString(ascii, "-")
	slug = strings.ToLower(strings.Trim(slug, "-"))

	if maxLength > 0 && len(slug) > maxLength {
		// slug is pure ASCII here, so byte and character counts agree
		slug = strings.Trim(slug[:maxLength], "-")
	}

	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// YAMLEscape returns text as a scalar that can sit after a key on one line.
// Text without reserved characters or surrounding whitespace is returned as
// is; anything else is wrapped in double quotes with backslashes and quotes
// escaped.
func YAMLEscape(text string) string {
	if !needsQuotes(text) {
		return text
	}

	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

func needsQuotes(text string) bool {
	return strings.ContainsAny(text, yamlReserved) || strings.TrimFunc(text, IsSpace) != text
}

// IsSpace is unicode.IsSpace plus the information separators U+001C to
// U+001F, which text tooling commonly strips as whitespace too.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}
