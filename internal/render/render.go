// Package render turns each recipe record into a standalone HTML page.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/dateutil"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/logger"
	"github.com/alnah/go-recipebox/internal/recipe"
)

// DefaultOutputDir is where recipe pages are written.
const DefaultOutputDir = "web/recipes"

// DefaultBackLink points from a recipe page to the index page.
const DefaultBackLink = "../recipe-box.html"

// highlightStyle is the chroma style for code in summaries and the source view.
const highlightStyle = "github"

// Sentinel errors for page rendering.
var (
	ErrSummaryRender = errors.New("failed to render summary")
	ErrSourceRender  = errors.New("failed to highlight source")
	ErrStyleLoad     = errors.New("failed to load page style")
	ErrUnsafeStyle   = errors.New("style would terminate its inline element")
)

// Options configures a Renderer.
type Options struct {
	// Assets supplies the page stylesheet; embedded assets when nil.
	Assets assets.AssetLoader
	// Style names the recipe page stylesheet; assets.DefaultRecipeStyle when empty.
	Style string
	// DateFormat formats the created date; dateutil.DefaultDateFormat when empty.
	DateFormat string
	// ShowSource appends the highlighted XML source to every page.
	ShowSource bool
	// BackLink is the href of the link back to the index; DefaultBackLink when empty.
	BackLink string
	// Logger receives per-file results; nil discards.
	Logger *slog.Logger
}

// Result is the outcome of rendering one file.
type Result struct {
	Source string
	Output string
	Err    error
}

// Renderer applies the fixed recipe page layout.
type Renderer struct {
	md         goldmark.Markdown
	css        string
	dateFormat string
	showSource bool
	backLink   string
	log        *slog.Logger
}

// New builds a Renderer, loading its stylesheet once.
func New(opts Options) (*Renderer, error) {
	loader := opts.Assets
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	style := opts.Style
	if style == "" {
		style = assets.DefaultRecipeStyle
	}
	css, err := loader.LoadStyle(style)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStyleLoad, err)
	}
	if strings.Contains(strings.ToLower(css), "</style") {
		return nil, fmt.Errorf("%w: %q", ErrUnsafeStyle, style)
	}

	dateFormat := opts.DateFormat
	if dateFormat == "" {
		dateFormat = dateutil.DefaultDateFormat
	}
	if _, err := dateutil.Layout(dateFormat); err != nil {
		return nil, err
	}

	backLink := opts.BackLink
	if backLink == "" {
		backLink = DefaultBackLink
	}

	return &Renderer{
		md:         newMarkdown(),
		css:        css,
		dateFormat: dateFormat,
		showSource: opts.ShowSource,
		backLink:   backLink,
		log:        logger.OrDiscard(opts.Logger),
	}, nil
}

// newMarkdown configures goldmark for summaries: GFM, highlighted code
// fences with inline styles, raw HTML dropped.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
			),
		),
	)
}

// RenderFile reads the record at path and renders its page.
func (r *Renderer) RenderFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from directory listing or CLI
	if err != nil {
		return "", fmt.Errorf("%w: %v", recipe.ErrReadRecord, err)
	}
	rec, err := recipe.Parse(data)
	if err != nil {
		return "", err
	}
	return r.Render(rec, data)
}

// Render produces the page for rec. source is the original file content,
// shown highlighted when the renderer was built with ShowSource.
func (r *Renderer) Render(rec *recipe.Record, source []byte) (string, error) {
	rc := rec.Recipe()

	var summary bytes.Buffer
	if rc.Summary != "" {
		if err := r.md.Convert([]byte(rc.Summary), &summary); err != nil {
			return "", fmt.Errorf("%w: %v", ErrSummaryRender, err)
		}
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(rc.Title))
	fmt.Fprintf(&b, "<style>\n%s</style>\n", r.css)
	b.WriteString("</head>\n<body>\n<main>\n")
	fmt.Fprintf(&b, "<p><a class=\"back-link\" href=\"%s\">&larr; All recipes</a></p>\n", html.EscapeString(r.backLink))
	b.WriteString("<article class=\"recipe\">\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(rc.Title))

	if summary.Len() > 0 {
		fmt.Fprintf(&b, "<div class=\"summary\">\n%s</div>\n", summary.String())
	}

	writeMeta(&b, rc)

	if len(rc.Tags) > 0 {
		b.WriteString("<ul class=\"tags\">\n")
		for _, t := range rc.Tags {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(t))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("<section class=\"ingredients\">\n<h2>Ingredients</h2>\n<ul>\n")
	for _, item := range rc.Ingredients {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(item))
	}
	b.WriteString("</ul>\n</section>\n")

	b.WriteString("<section class=\"steps\">\n<h2>Preparation</h2>\n<ol>\n")
	for _, s := range rc.Steps {
		fmt.Fprintf(&b, "<li value=\"%d\">%s</li>\n", s.Number, html.EscapeString(s.Text))
	}
	b.WriteString("</ol>\n</section>\n")

	if created := r.createdLabel(rc); created != "" {
		fmt.Fprintf(&b, "<p class=\"created\">Added <time datetime=\"%s\">%s</time></p>\n",
			html.EscapeString(rc.Created), html.EscapeString(created))
	}

	if r.showSource && len(source) > 0 {
		highlighted, err := HighlightXML(source)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "<section class=\"source\">\n<h2>Source</h2>\n%s</section>\n", highlighted)
	}

	b.WriteString("</article>\n</main>\n</body>\n</html>\n")
	return b.String(), nil
}

// writeMeta writes the servings, time, difficulty, and category list.
func writeMeta(b *strings.Builder, rc recipe.Recipe) {
	b.WriteString("<dl class=\"meta\">\n")
	metaItem(b, "Servings", strconv.Itoa(rc.Servings))
	metaItem(b, "Total time", rc.TotalTime)
	metaItem(b, "Difficulty", rc.Difficulty)
	metaItem(b, "Category", recipe.CategoryLabel(rc.Category))
	b.WriteString("</dl>\n")
}

func metaItem(b *strings.Builder, term, value string) {
	fmt.Fprintf(b, "<div><dt>%s</dt><dd>%s</dd></div>\n", html.EscapeString(term), html.EscapeString(value))
}

// createdLabel formats the created timestamp. Unparsable values are shown
// as written; a missing value yields "".
func (r *Renderer) createdLabel(rc recipe.Recipe) string {
	t, ok := rc.CreatedTime()
	if !ok {
		return rc.Created
	}
	label, err := dateutil.Format(t, r.dateFormat)
	if err != nil {
		return rc.Created
	}
	return label
}

// HighlightXML returns source as a highlighted <pre> block with inline styles.
func HighlightXML(source []byte) (string, error) {
	lexer := lexers.Get("xml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(source))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceRender, err)
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.TabWidth(2))
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceRender, err)
	}
	return buf.String(), nil
}

// OutputPath returns <outDir>/<base>.html for a source file.
func OutputPath(outDir, source string) string {
	return filepath.Join(outDir, fileutil.BaseName(source)+".html")
}

// RenderDir renders every record file in srcDir into outDir. Only an
// unreadable source directory is returned as an error.
func (r *Renderer) RenderDir(ctx context.Context, srcDir, outDir string) ([]Result, error) {
	paths, err := fileutil.ListByExtension(srcDir, recipe.FileExtension)
	if err != nil {
		return nil, err
	}
	return r.RenderFiles(ctx, paths, outDir)
}

// RenderFiles renders each path into outDir. Each file is handled on its
// own: a failure is recorded in its Result and the batch continues. Only a
// cancelled context stops the batch early.
func (r *Renderer) RenderFiles(ctx context.Context, paths []string, outDir string) ([]Result, error) {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := Result{Source: p, Output: OutputPath(outDir, p)}
		page, err := r.RenderFile(p)
		if err == nil {
			err = fileutil.WriteFile(res.Output, []byte(page))
		}
		if err != nil {
			res.Err = err
			r.log.Warn("recipe page failed", "file", p, "error", err)
		} else {
			r.log.Debug("recipe page written", "file", p, "output", res.Output)
		}
		results = append(results, res)
	}
	return results, nil
}
