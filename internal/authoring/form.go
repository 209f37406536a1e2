package authoring

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/alnah/go-recipebox/internal/recipe"
)

// formValues are the raw values shown in the form inputs.
type formValues struct {
	Title       string
	Summary     string
	Servings    string
	TotalTime   string
	Tags        string
	Ingredients string
	Steps       string
	Difficulty  string
	Category    string
}

// formPage is everything one rendering of the form shows.
type formPage struct {
	CSS     string
	Created string
	Errors  []string
	HomeURL string
	Form    formValues
}

// blankForm holds the values of a fresh form.
func blankForm() formValues {
	return formValues{
		Servings:   strconv.Itoa(recipe.DefaultServings),
		Difficulty: recipe.DefaultDifficulty,
		Category:   recipe.DefaultCategory,
	}
}

// submittedForm holds the values of a rejected submission so the user
// can correct them.
func submittedForm(sub Submission) formValues {
	return formValues{
		Title:       sub.Title,
		Summary:     sub.Summary,
		Servings:    sub.ServingsText,
		TotalTime:   sub.TotalTime,
		Tags:        strings.Join(sub.Tags, ", "),
		Ingredients: strings.Join(sub.Ingredients, "\n"),
		Steps:       strings.Join(sub.Steps, "\n"),
		Difficulty:  sub.Difficulty,
		Category:    sub.Category,
	}
}

const homeConfirm = "Newly created recipes only appear after re-running recipebox index and recipebox render. Open the recipe home page now?"

// renderForm assembles the form document. Every value coming from the
// request is escaped; the stylesheet was checked by NewServer.
func renderForm(page formPage) ([]byte, error) {
	esc := html.EscapeString
	f := page.Form

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>Create Recipe</title>\n")
	fmt.Fprintf(&b, "<style>\n%s</style>\n", page.CSS)
	b.WriteString("</head>\n<body>\n<main>\n<h1>Create Recipe</h1>\n")

	if page.Created != "" {
		fmt.Fprintf(&b, "<div class=\"flash flash-success\" role=\"status\">Wrote recipe: %s</div>\n", esc(page.Created))
	}
	if len(page.Errors) > 0 {
		b.WriteString("<div class=\"flash flash-error\" role=\"alert\">\n<strong>The recipe was not saved.</strong>\n<ul>\n")
		for _, msg := range page.Errors {
			fmt.Fprintf(&b, "<li>%s</li>\n", esc(msg))
		}
		b.WriteString("</ul>\n</div>\n")
	}

	b.WriteString("<form method=\"post\" action=\"/create\">\n")
	b.WriteString("<label for=\"title\">Title</label>\n")
	fmt.Fprintf(&b, "<input id=\"title\" name=\"title\" maxlength=\"%d\" required value=\"%s\">\n", MaxTitleLength, esc(f.Title))
	b.WriteString("<label for=\"summary\">Summary</label>\n")
	fmt.Fprintf(&b, "<textarea id=\"summary\" name=\"summary\" rows=\"3\">%s</textarea>\n", esc(f.Summary))

	b.WriteString("<div class=\"row\">\n<div>\n<label for=\"servings\">Servings</label>\n")
	fmt.Fprintf(&b, "<input id=\"servings\" name=\"servings\" inputmode=\"numeric\" value=\"%s\">\n", esc(f.Servings))
	b.WriteString("</div>\n<div>\n<label for=\"totalTime\">Total time</label>\n")
	fmt.Fprintf(&b, "<input id=\"totalTime\" name=\"totalTime\" placeholder=\"e.g. 45 minutes\" value=\"%s\">\n", esc(f.TotalTime))
	b.WriteString("</div>\n</div>\n")

	b.WriteString("<div class=\"row\">\n<div>\n<label for=\"difficulty\">Difficulty</label>\n")
	writeSelect(&b, "difficulty", recipe.Difficulties, f.Difficulty)
	b.WriteString("</div>\n<div>\n<label for=\"category\">Category</label>\n")
	writeSelect(&b, "category", recipe.Categories, f.Category)
	b.WriteString("</div>\n</div>\n")

	b.WriteString("<label for=\"tags\">Tags</label>\n")
	fmt.Fprintf(&b, "<input id=\"tags\" name=\"tags\" value=\"%s\">\n", esc(f.Tags))
	b.WriteString("<p class=\"hint\">Comma-separated.</p>\n")
	b.WriteString("<label for=\"ingredients\">Ingredients</label>\n")
	fmt.Fprintf(&b, "<textarea id=\"ingredients\" name=\"ingredients\" rows=\"5\">%s</textarea>\n", esc(f.Ingredients))
	b.WriteString("<p class=\"hint\">One per line.</p>\n")
	b.WriteString("<label for=\"steps\">Steps</label>\n")
	fmt.Fprintf(&b, "<textarea id=\"steps\" name=\"steps\" rows=\"6\">%s</textarea>\n", esc(f.Steps))
	b.WriteString("<p class=\"hint\">One per line, in order.</p>\n")
	b.WriteString("<button type=\"submit\">Create</button>\n</form>\n")

	b.WriteString("<p class=\"note\">New recipes appear on the recipe home page after running " +
		"<code>recipebox index</code> and <code>recipebox render</code> again.</p>\n")

	if page.HomeURL != "" {
		// json.Marshal escapes <, > and & so the literal cannot end the script.
		home, err := json.Marshal(page.HomeURL)
		if err != nil {
			return nil, fmt.Errorf("encoding home URL: %w", err)
		}
		prompt, err := json.Marshal(homeConfirm)
		if err != nil {
			return nil, fmt.Errorf("encoding home prompt: %w", err)
		}
		b.WriteString("<p><a href=\"#\" id=\"view-home\">View Recipe Home</a></p>\n<script>\n")
		b.WriteString("document.getElementById(\"view-home\").addEventListener(\"click\", function (e) {\n")
		b.WriteString("  e.preventDefault();\n")
		fmt.Fprintf(&b, "  if (confirm(%s)) {\n    window.open(%s, \"_blank\");\n  }\n", prompt, home)
		b.WriteString("});\n</script>\n")
	}

	b.WriteString("</main>\n</body>\n</html>\n")
	return []byte(b.String()), nil
}

// writeSelect writes a select element with one option per value, labelled
// the way the recipe pages label them.
func writeSelect(b *strings.Builder, name string, values []string, selected string) {
	fmt.Fprintf(b, "<select id=\"%s\" name=\"%s\">\n", name, name)
	for _, v := range values {
		attr := ""
		if v == selected {
			attr = " selected"
		}
		fmt.Fprintf(b, "<option value=\"%s\"%s>%s</option>\n", html.EscapeString(v), attr, html.EscapeString(recipe.CategoryLabel(v)))
	}
	b.WriteString("</select>\n")
}
