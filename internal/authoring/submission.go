// Package authoring turns submitted form fields into new recipe records and
// serves the local authoring form.
package authoring

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/alnah/go-recipebox/internal/recipe"
)

// Field limits enforced on a submission.
const (
	MaxTitleLength = 200
	MaxServings    = 100
)

// Submission holds the cleaned form fields of one new recipe. Defaults are
// already applied when it comes out of ParseSubmission.
type Submission struct {
	Title        string   `form:"title" validate:"required,max=200"`
	Summary      string   `form:"summary" validate:"max=2000"`
	ServingsText string   `form:"servings" validate:"number"`
	Servings     int      `form:"servings" validate:"gte=1,lte=100"`
	TotalTime    string   `form:"totalTime" validate:"max=100"`
	Difficulty   string   `form:"difficulty" validate:"difficulty"`
	Tags         []string `form:"tags" validate:"max=30,dive,max=50"`
	Category     string   `form:"category" validate:"category"`
	Ingredients  []string `form:"ingredients" validate:"max=200,dive,max=500"`
	Steps        []string `form:"steps" validate:"max=200,dive,max=2000"`
}

var submissionValidator = NewValidator()

// ParseSubmission reads the form values, trims every field, splits tags on
// commas and ingredients and steps on line breaks, drops blank entries,
// applies the record defaults, and validates the result. The cleaned
// submission is returned even when validation fails so the form can be
// redisplayed with the submitted values.
func ParseSubmission(values url.Values) (Submission, error) {
	sub := Submission{
		Title:        field(values, "title"),
		Summary:      field(values, "summary"),
		ServingsText: field(values, "servings"),
		TotalTime:    field(values, "totalTime"),
		Difficulty:   strings.ToLower(field(values, "difficulty")),
		Category:     strings.ToLower(field(values, "category")),
		Tags:         splitList(values.Get("tags"), ","),
		Ingredients:  splitLines(values.Get("ingredients")),
		Steps:        splitLines(values.Get("steps")),
	}
	sub.applyDefaults()

	if err := submissionValidator.Validate(sub); err != nil {
		return sub, err
	}
	return sub, nil
}

func (s *Submission) applyDefaults() {
	if s.ServingsText == "" {
		s.ServingsText = strconv.Itoa(recipe.DefaultServings)
	}
	if n, err := strconv.Atoi(s.ServingsText); err == nil {
		s.Servings = n
	}
	if s.TotalTime == "" {
		s.TotalTime = recipe.DefaultTotalTime
	}
	if s.Difficulty == "" {
		s.Difficulty = recipe.DefaultDifficulty
	}
	if s.Category == "" {
		s.Category = recipe.DefaultCategory
	}
}

// Recipe converts the submission to the flattened recipe model. Steps are
// numbered from 1 in submission order.
func (s Submission) Recipe() recipe.Recipe {
	rc := recipe.Recipe{
		Title:       s.Title,
		Summary:     s.Summary,
		Tags:        s.Tags,
		Servings:    s.Servings,
		TotalTime:   s.TotalTime,
		Difficulty:  s.Difficulty,
		Category:    s.Category,
		Ingredients: s.Ingredients,
	}
	for i, text := range s.Steps {
		rc.Steps = append(rc.Steps, recipe.Step{Number: i + 1, Text: text})
	}
	return rc
}

func field(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitLines splits on \n and tolerates \r\n from browser textareas.
func splitLines(s string) []string {
	return splitList(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
