package recipe

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when a title reduces to nothing.
const DefaultSlug = "recipe"

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a filesystem-safe file stem from a title: lowercase
// alphanumeric tokens joined by single hyphens, no leading or trailing
// hyphen. Accented letters are transliterated ("Crème" becomes "creme").
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	words := strings.FieldsFunc(norm.NFC.String(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		if ascii, err := slug.HashNormalizeWithSeparator(w, "-"); err == nil {
			words[i] = ascii
		}
	}

	value := nonSlugRun.ReplaceAllString(strings.ToLower(strings.Join(words, "-")), "-")
	value = strings.Trim(value, "-")
	if value == "" {
		return DefaultSlug
	}
	return value
}

// FileName returns the record file name for a title.
func FileName(title string) string {
	return Slugify(title) + FileExtension
}
