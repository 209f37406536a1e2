package recipe

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when a record omits a field or leaves it blank.
// The authoring form writes the same values so both sides agree.
const (
	DefaultTitle      = "Untitled Recipe"
	DefaultServings   = 4
	DefaultTotalTime  = "0 minutes"
	DefaultDifficulty = "medium"
	DefaultCategory   = "uncategorized"
)

// createdLayout is the timestamp layout of the created element.
const createdLayout = "2006-01-02T15:04:05Z"

// Difficulties lists the accepted difficulty values, easiest first.
var Difficulties = []string{"easy", "medium", "hard"}

// Categories lists the accepted category values in display order.
var Categories = []string{
	"uncategorized",
	"breakfast",
	"main-course",
	"soup",
	"dessert",
	"side-dish",
	"salad",
	"appetizer",
	"beverage",
	"snack",
	"brunch",
}

// Recipe is the flattened view of a Record with defaults applied.
type Recipe struct {
	Title       string
	Summary     string
	Tags        []string
	Servings    int
	TotalTime   string
	Difficulty  string
	Category    string
	Ingredients []string
	Steps       []Step
	Created     string
}

// Step is one numbered preparation step.
type Step struct {
	Number int
	Text   string
}

// IsDifficulty reports whether s is an accepted difficulty.
func IsDifficulty(s string) bool {
	return slices.Contains(Difficulties, s)
}

// IsCategory reports whether s is an accepted category.
func IsCategory(s string) bool {
	return slices.Contains(Categories, s)
}

// Recipe returns the defaulted view of the record.
func (r *Record) Recipe() Recipe {
	out := Recipe{
		Title:      textOr(r.Title, DefaultTitle),
		Servings:   DefaultServings,
		TotalTime:  DefaultTotalTime,
		Difficulty: DefaultDifficulty,
		Category:   textOr(r.Category, DefaultCategory),
		Created:    textOr(r.Created, ""),
	}

	if d := r.Description; d != nil {
		out.Summary = textOr(d.Summary, "")
		if d.Tags != nil {
			out.Tags = nonBlank(d.Tags.Tag)
		}
	}

	if m := r.Metadata; m != nil {
		if n, err := strconv.Atoi(textOr(m.Servings, "")); err == nil && n > 0 {
			out.Servings = n
		}
		out.TotalTime = textOr(m.TotalTime, DefaultTotalTime)
		out.Difficulty = textOr(m.Difficulty, DefaultDifficulty)
	}

	if r.Ingredients != nil {
		out.Ingredients = nonBlank(r.Ingredients.Items)
	}

	if r.Preparation != nil {
		for i, s := range r.Preparation.Steps {
			text := strings.TrimSpace(s.Text)
			if text == "" {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(s.Number))
			if err != nil || n < 1 {
				n = i + 1
			}
			out.Steps = append(out.Steps, Step{Number: n, Text: text})
		}
	}

	return out
}

// New builds a complete Record from a Recipe. Blank fields receive the
// extractor defaults and steps are renumbered from 1.
func New(rc Recipe, created time.Time) *Record {
	title := strings.TrimSpace(rc.Title)
	if title == "" {
		title = DefaultTitle
	}
	servings := rc.Servings
	if servings < 1 {
		servings = DefaultServings
	}

	rec := &Record{
		Xmlns: Namespace,
		Title: ptr(title),
		Description: &Description{
			Summary: ptr(strings.TrimSpace(rc.Summary)),
		},
		Metadata: &Metadata{
			Servings:   ptr(strconv.Itoa(servings)),
			TotalTime:  ptr(orDefault(rc.TotalTime, DefaultTotalTime)),
			Difficulty: ptr(orDefault(rc.Difficulty, DefaultDifficulty)),
		},
		Ingredients: &Ingredients{Items: nonBlank(rc.Ingredients)},
		Category:    ptr(orDefault(rc.Category, DefaultCategory)),
		Preparation: &Preparation{},
		Created:     ptr(created.UTC().Format(createdLayout)),
	}

	if tags := nonBlank(rc.Tags); len(tags) > 0 {
		rec.Description.Tags = &Tags{Tag: tags}
	}

	n := 0
	for _, s := range rc.Steps {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		n++
		rec.Preparation.Steps = append(rec.Preparation.Steps, StepElement{
			Number: strconv.Itoa(n),
			Text:   text,
		})
	}

	return rec
}

// CreatedTime parses the created timestamp. The zero time and false are
// returned when the record has none or it is not RFC 3339.
func (rc Recipe) CreatedTime() (time.Time, bool) {
	if rc.Created == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, rc.Created)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// textOr returns the trimmed text of s, or fallback when s is nil or blank.
func textOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return orDefault(*s, fallback)
}

func orDefault(s, fallback string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return fallback
}

// nonBlank trims every item and drops the empty ones.
func nonBlank(items []string) []string {
	var out []string
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}
