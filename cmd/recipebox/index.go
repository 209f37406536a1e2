package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-recipebox/internal/config"
	"github.com/alnah/go-recipebox/internal/extract"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/hints"
	"github.com/alnah/go-recipebox/internal/index"
	"github.com/alnah/go-recipebox/internal/schema"
)

// runIndexCmd extracts every recipe and writes the index page.
func runIndexCmd(ctx context.Context, args []string, env *Environment) error {
	f, err := parseIndexFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(&f.common, env)
	if err != nil {
		return err
	}
	mergeIndexFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(&f.common, cfg, env)

	loader, err := assetLoader(cfg, env, log)
	if err != nil {
		return err
	}

	validator, err := schema.Load(cfg.Schema.Path)
	if err != nil {
		return err
	}
	if validator == nil {
		log.Info("schema not found, validation disabled", "path", cfg.Schema.Path)
	}

	extractor := &extract.Extractor{
		Validator:   validator,
		PagesPrefix: extract.PagesPrefix(cfg.Index.Output, cfg.Render.OutputDir),
		Logger:      log,
	}
	report, err := extractor.ExtractDir(ctx, cfg.Recipes.Dir)
	if err != nil {
		return recipesDirError(err, cfg.Recipes.Dir)
	}
	for _, s := range report.Skipped {
		fmt.Fprintf(env.Stderr, "SKIPPED %s: %v\n", s.File, s.Err)
	}

	formURL := cfg.Index.FormURL
	if formURL != "" && !index.Probe(ctx, formURL, cfg.ProbeTimeout()) {
		log.Info("authoring form not reachable, link omitted", "url", formURL)
		formURL = ""
	}

	page, err := index.Build(report.Summaries, index.Options{
		Title:   cfg.Index.Title,
		FormURL: formURL,
		Assets:  loader,
	})
	if err != nil {
		return err
	}

	if err := fileutil.WriteFile(cfg.Index.Output, []byte(page)); err != nil {
		return outputError(err)
	}

	if !f.common.quiet {
		invalid := 0
		for _, s := range report.Summaries {
			if !s.Valid {
				invalid++
			}
		}
		fmt.Fprintf(env.Stdout, "Created %s (%d recipes, %d invalid, %d skipped)\n",
			cfg.Index.Output, len(report.Summaries), invalid, len(report.Skipped))
	}
	return nil
}

// mergeIndexFlags merges index flags into config. CLI values override config values.
func mergeIndexFlags(f *indexFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Index.Output = f.output
	}
	if f.title != "" {
		cfg.Index.Title = f.title
	}
	if f.formURLSet {
		cfg.Index.FormURL = f.formURL
	}
	if f.schema != "" {
		cfg.Schema.Path = f.schema
	}
	if f.probeTimeout != "" {
		cfg.Index.ProbeTimeout = f.probeTimeout
	}
}

// recipesDirError appends the recipes directory hint.
func recipesDirError(err error, dir string) error {
	if errors.Is(err, extract.ErrRecipesDir) || errors.Is(err, fileutil.ErrReadDirectory) {
		return fmt.Errorf("%w%s", err, hints.ForRecipesDir(dir))
	}
	return err
}

// outputError appends the output directory hint.
func outputError(err error) error {
	if errors.Is(err, fileutil.ErrOutputDirectory) {
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	return err
}
