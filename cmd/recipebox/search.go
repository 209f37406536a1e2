package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-recipebox/internal/extract"
	"github.com/alnah/go-recipebox/internal/render"
	"github.com/alnah/go-recipebox/internal/search"
)

// searchHit is one line of search --json output.
type searchHit struct {
	Title      string  `json:"title"`
	TotalTime  string  `json:"totalTime"`
	Difficulty string  `json:"difficulty"`
	Category   string  `json:"category"`
	Page       string  `json:"page"`
	Score      float64 `json:"score"`
}

// runSearchCmd searches the recipes directory from the command line.
func runSearchCmd(ctx context.Context, args []string, env *Environment) error {
	f, words, err := parseSearchFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	params := search.Params{
		Query:      strings.Join(words, " "),
		Difficulty: f.difficulty,
		Time:       f.time,
		Category:   f.category,
		Limit:      f.limit,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig(&f.common, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(&f.common, cfg, env)

	extractor := &extract.Extractor{Logger: log}
	report, err := extractor.ExtractDir(ctx, cfg.Recipes.Dir)
	if err != nil {
		return recipesDirError(err, cfg.Recipes.Dir)
	}

	idx, err := search.New(report.Summaries, log)
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()

	result, err := idx.Search(ctx, params)
	if err != nil {
		return err
	}

	hits := make([]searchHit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, searchHit{
			Title:      h.Summary.Title,
			TotalTime:  h.Summary.TotalTime,
			Difficulty: h.Summary.Difficulty,
			Category:   h.Summary.Category,
			Page:       render.OutputPath(cfg.Render.OutputDir, h.Summary.File),
			Score:      h.Score,
		})
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
	printSearchResults(hits, result.Total, env)
	return nil
}

// printSearchResults prints an aligned table of hits.
func printSearchResults(hits []searchHit, total uint64, env *Environment) {
	if len(hits) == 0 {
		fmt.Fprintln(env.Stdout, "No recipes found")
		return
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tTIME\tDIFFICULTY\tPAGE")
	for _, h := range hits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Title, h.TotalTime, h.Difficulty, h.Page)
	}
	_ = tw.Flush()

	if uint64(len(hits)) < total {
		fmt.Fprintf(env.Stdout, "\nShowing %d of %d recipes\n", len(hits), total)
	}
}
