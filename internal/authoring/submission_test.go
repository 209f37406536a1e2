package authoring

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"testing"
)

func TestParseSubmission(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"title":       {"  Lemon Pasta  "},
		"summary":     {" Bright. "},
		"servings":    {" 2 "},
		"totalTime":   {"20 minutes"},
		"difficulty":  {"Easy"},
		"tags":        {"pasta, quick,, vegetarian ,"},
		"category":    {"main-course"},
		"ingredients": {"200g spaghetti\r\n\r\n 1 lemon \n"},
		"steps":       {"Boil water.\nCook pasta.\n"},
	}

	sub, err := ParseSubmission(values)
	if err != nil {
		t.Fatalf("ParseSubmission() error: %v", err)
	}

	if sub.Title != "Lemon Pasta" || sub.Summary != "Bright." {
		t.Errorf("Title = %q, Summary = %q, want trimmed values", sub.Title, sub.Summary)
	}
	if sub.Servings != 2 {
		t.Errorf("Servings = %d, want 2", sub.Servings)
	}
	if sub.Difficulty != "easy" {
		t.Errorf("Difficulty = %q, want easy", sub.Difficulty)
	}
	lists := []struct {
		name      string
		got, want []string
	}{
		{"Tags", sub.Tags, []string{"pasta", "quick", "vegetarian"}},
		{"Ingredients", sub.Ingredients, []string{"200g spaghetti", "1 lemon"}},
		{"Steps", sub.Steps, []string{"Boil water.", "Cook pasta."}},
	}
	for _, l := range lists {
		if !slices.Equal(l.got, l.want) {
			t.Errorf("%s = %q, want %q", l.name, l.got, l.want)
		}
	}
}

func TestParseSubmission_Defaults(t *testing.T) {
	t.Parallel()

	sub, err := ParseSubmission(url.Values{"title": {"Toast"}})
	if err != nil {
		t.Fatalf("ParseSubmission() error: %v", err)
	}

	if sub.Servings != 4 || sub.ServingsText != "4" {
		t.Errorf("Servings = %d (%q), want 4", sub.Servings, sub.ServingsText)
	}
	if sub.TotalTime != "0 minutes" {
		t.Errorf("TotalTime = %q, want 0 minutes", sub.TotalTime)
	}
	if sub.Difficulty != "medium" || sub.Category != "uncategorized" {
		t.Errorf("Difficulty = %q, Category = %q", sub.Difficulty, sub.Category)
	}
	if len(sub.Tags) != 0 || len(sub.Steps) != 0 {
		t.Errorf("Tags = %q, Steps = %q, want empty", sub.Tags, sub.Steps)
	}
}

func TestParseSubmission_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  url.Values
		field   string
		message string
	}{
		{
			name:    "missing title",
			values:  url.Values{"title": {"   "}},
			field:   "title",
			message: "Title is required",
		},
		{
			name:    "title too long",
			values:  url.Values{"title": {strings.Repeat("a", MaxTitleLength+1)}},
			field:   "title",
			message: "Title must not exceed 200 characters",
		},
		{
			name:    "servings not a number",
			values:  url.Values{"title": {"Soup"}, "servings": {"a few"}},
			field:   "servings",
			message: "Servings must be a whole number",
		},
		{
			name:    "servings zero",
			values:  url.Values{"title": {"Soup"}, "servings": {"0"}},
			field:   "servings",
			message: "Servings must be greater than or equal to 1",
		},
		{
			name:    "servings too many",
			values:  url.Values{"title": {"Soup"}, "servings": {"500"}},
			field:   "servings",
			message: "Servings must be less than or equal to 100",
		},
		{
			name:    "unknown difficulty",
			values:  url.Values{"title": {"Soup"}, "difficulty": {"extreme"}},
			field:   "difficulty",
			message: "Difficulty must be one of: easy, medium, hard",
		},
		{
			name:    "unknown category",
			values:  url.Values{"title": {"Soup"}, "category": {"lunch"}},
			field:   "category",
			message: "Category must be one of:",
		},
		{
			name:    "tag too long",
			values:  url.Values{"title": {"Soup"}, "tags": {"ok, " + strings.Repeat("t", 51)}},
			field:   "tags",
			message: "Tags must not exceed 50 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSubmission(tt.values)
			if !errors.Is(err, ErrInvalidSubmission) {
				t.Fatalf("error = %v, want ErrInvalidSubmission", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if len(verr.Fields) != 1 {
				t.Fatalf("got %d field errors, want 1: %v", len(verr.Fields), verr.Messages())
			}
			if verr.Fields[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Fields[0].Field, tt.field)
			}
			if msg := verr.Messages()[0]; !strings.Contains(msg, tt.message) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.message)
			}
		})
	}
}

func TestParseSubmission_KeepsValuesOnFailure(t *testing.T) {
	t.Parallel()

	sub, err := ParseSubmission(url.Values{"title": {""}, "tags": {"a, b"}})
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	if !slices.Equal(sub.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %q, want [a b]", sub.Tags)
	}
}

func TestSubmissionRecipe(t *testing.T) {
	t.Parallel()

	rc := SampleSubmission().Recipe()
	if len(rc.Steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(rc.Steps))
	}
	for i, step := range rc.Steps {
		if step.Number != i+1 {
			t.Errorf("step %d numbered %d", i, step.Number)
		}
	}
	if rc.Servings != 2 {
		t.Errorf("Servings = %d, want 2", rc.Servings)
	}
}

func TestSampleSubmissionIsValid(t *testing.T) {
	t.Parallel()

	if err := NewValidator().Validate(SampleSubmission()); err != nil {
		t.Errorf("sample submission rejected: %v", err)
	}
}
