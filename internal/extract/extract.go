// Package extract reads recipe records from disk and flattens them into the
// metadata summaries shown on the index page.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/alnah/go-recipebox/internal/cooktime"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/logger"
	"github.com/alnah/go-recipebox/internal/recipe"
	"github.com/alnah/go-recipebox/internal/schema"
)

// ErrRecipesDir indicates the recipes directory could not be listed.
var ErrRecipesDir = errors.New("failed to read recipes directory")

// Summary is the display-ready projection of one recipe.
type Summary struct {
	File        string   `json:"file"`
	Page        string   `json:"page"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Servings    int      `json:"servings"`
	TotalTime   string   `json:"totalTime"`
	CookMinutes int      `json:"cookMinutes"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
}

// Skipped names a file left out of the report and the reason.
type Skipped struct {
	File string
	Err  error
}

// Report is the outcome of extracting a directory.
type Report struct {
	Summaries []Summary
	Skipped   []Skipped
}

// Extractor builds summaries. The zero value extracts without validation
// and links pages relative to the index file's own directory.
type Extractor struct {
	// Validator checks every parsed record; nil disables validation.
	Validator *schema.Validator
	// PagesPrefix is the slash-separated path from the index page to the
	// directory holding the rendered recipe pages.
	PagesPrefix string
	// Logger receives one entry per skipped file; nil discards.
	Logger *slog.Logger
}

// ExtractFile reads, parses, defaults, and validates one record.
func (e *Extractor) ExtractFile(filePath string) (Summary, error) {
	rec, err := recipe.ParseFile(filePath)
	if err != nil {
		return Summary{}, err
	}
	return e.Summarize(filepath.Base(filePath), rec), nil
}

// Summarize builds the summary of an already parsed record. file is the
// source base name.
func (e *Extractor) Summarize(file string, rec *recipe.Record) Summary {
	rc := rec.Recipe()
	result := e.Validator.Validate(rec)

	s := Summary{
		File:        file,
		Page:        PageLink(e.PagesPrefix, file),
		Title:       rc.Title,
		Description: rc.Summary,
		Servings:    rc.Servings,
		TotalTime:   rc.TotalTime,
		CookMinutes: cooktime.ParseMinutes(rc.TotalTime),
		Difficulty:  rc.Difficulty,
		Tags:        rc.Tags,
		Category:    rc.Category,
		Valid:       result.Valid,
		Errors:      result.Errors,
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.Errors == nil {
		s.Errors = []string{}
	}
	return s
}

// ExtractDir extracts every record file directly inside dir, in name order.
// Unparsable files are logged and listed in Report.Skipped; they never fail
// the batch. Only an unreadable directory or a cancelled context is an error.
func (e *Extractor) ExtractDir(ctx context.Context, dir string) (Report, error) {
	log := logger.OrDiscard(e.Logger)

	paths, err := fileutil.ListByExtension(dir, recipe.FileExtension)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrRecipesDir, err)
	}

	report := Report{Summaries: make([]Summary, 0, len(paths))}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		s, err := e.ExtractFile(p)
		if err != nil {
			log.Warn("skipping recipe", "file", p, "error", err)
			report.Skipped = append(report.Skipped, Skipped{File: p, Err: err})
			continue
		}
		if !s.Valid {
			log.Debug("recipe failed schema validation", "file", p, "errors", len(s.Errors))
		}
		report.Summaries = append(report.Summaries, s)
	}

	log.Info("extracted recipes", "dir", dir, "parsed", len(report.Summaries), "skipped", len(report.Skipped))
	return report, nil
}

// PageLink returns the percent-encoded link to the rendered page of a
// record file.
func PageLink(prefix, file string) string {
	page := fileutil.BaseName(file) + ".html"
	if prefix == "" || prefix == "." {
		return fileutil.Href(page)
	}
	return fileutil.Href(path.Join(prefix, page))
}

// PagesPrefix returns the slash-separated relative path from the directory
// of indexFile to pagesDir.
func PagesPrefix(indexFile, pagesDir string) string {
	return fileutil.RelativeLink(filepath.Dir(indexFile), pagesDir)
}
