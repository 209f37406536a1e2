// Package index builds the static recipe index page: a search box, filter
// chips, and the embedded metadata of every recipe, re-rendered client-side.
package index

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/extract"
	"github.com/alnah/go-recipebox/internal/recipe"
)

// DefaultTitle is the heading of the index page.
const DefaultTitle = "Recipe Box"

// DefaultOutput is where the index page is written.
const DefaultOutput = "web/recipe-box.html"

// Options controls index page generation.
type Options struct {
	// Title is the page heading; DefaultTitle when empty.
	Title string
	// FormURL links the authoring form; the link is omitted when empty.
	FormURL string
	// Assets supplies the stylesheet and script; embedded assets when nil.
	Assets assets.AssetLoader
}

// Build renders the complete index document for summaries.
func Build(summaries []extract.Summary, opts Options) (string, error) {
	loader := opts.Assets
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	css, err := loader.LoadStyle(assets.IndexStyle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	js, err := loader.LoadScript(assets.IndexScript)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	if err := checkInline(css, "</style"); err != nil {
		return "", err
	}
	if err := checkInline(js, "</script"); err != nil {
		return "", err
	}

	payload, err := Payload(summaries)
	if err != nil {
		return "", err
	}
	labels, err := json.Marshal(categoryLabels(summaries))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayloadEncode, err)
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<style>\n%s</style>\n", css)
	b.WriteString("</head>\n<body>\n")

	b.WriteString("<header>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))
	if opts.FormURL != "" {
		fmt.Fprintf(&b, "<p class=\"form-link\"><a href=\"%s\">Add a new recipe</a></p>\n", html.EscapeString(opts.FormURL))
	}
	b.WriteString("</header>\n")

	writeControls(&b)

	b.WriteString("<main id=\"recipe-grid\">\n")
	writeFallback(&b, summaries)
	b.WriteString("</main>\n")

	fmt.Fprintf(&b, "<script type=\"application/json\" id=\"recipe-data\">%s</script>\n", payload)
	fmt.Fprintf(&b, "<script type=\"application/json\" id=\"category-labels\">%s</script>\n", labels)
	fmt.Fprintf(&b, "<script>\n%s</script>\n", js)
	b.WriteString("</body>\n</html>\n")

	return b.String(), nil
}

// writeControls writes the search box and chip bar.
func writeControls(b *strings.Builder) {
	b.WriteString("<section class=\"controls\">\n")
	b.WriteString("<input type=\"search\" id=\"search\" placeholder=\"Search titles, descriptions, tags\" autocomplete=\"off\">\n")
	b.WriteString("<div class=\"chip-bar\">\n")
	kind := ""
	for _, c := range Chips {
		if c.Kind != kind {
			kind = c.Kind
			fmt.Fprintf(b, "<span class=\"chip-group-label\">%s</span>\n", html.EscapeString(recipe.CategoryLabel(kind)))
		}
		fmt.Fprintf(b, "<button type=\"button\" class=\"chip\" data-filter=\"%s\" aria-pressed=\"false\">%s</button>\n",
			html.EscapeString(c.String()), html.EscapeString(c.Label))
	}
	b.WriteString("</div>\n")
	b.WriteString("<p id=\"result-count\"></p>\n")
	b.WriteString("</section>\n")
}

// writeFallback lists plain links for browsers without scripting. The
// script replaces the grid contents on load.
func writeFallback(b *strings.Builder, summaries []extract.Summary) {
	b.WriteString("<noscript><ul>\n")
	for _, s := range summaries {
		fmt.Fprintf(b, "<li><a href=\"%s\">%s</a></li>\n", html.EscapeString(s.Page), html.EscapeString(s.Title))
	}
	b.WriteString("</ul></noscript>\n")
}

// categoryLabels maps every known category, plus any unknown ones found in
// summaries, to its display label.
func categoryLabels(summaries []extract.Summary) map[string]string {
	labels := make(map[string]string, len(recipe.Categories))
	for _, c := range recipe.Categories {
		labels[c] = recipe.CategoryLabel(c)
	}
	for _, s := range summaries {
		if _, ok := labels[s.Category]; !ok {
			labels[s.Category] = recipe.CategoryLabel(s.Category)
		}
	}
	return labels
}

// checkInline rejects asset text that would close its inline element early.
func checkInline(content, closing string) error {
	if strings.Contains(strings.ToLower(content), closing) {
		return fmt.Errorf("%w: contains %s", ErrUnsafeAsset, closing)
	}
	return nil
}
