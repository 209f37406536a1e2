package recipe

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryLabel turns a category slug such as "main-course" into its
// display label ("Main Course").
func CategoryLabel(category string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(category, "-", " "))
}
