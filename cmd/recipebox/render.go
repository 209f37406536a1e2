package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/config"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/hints"
	"github.com/alnah/go-recipebox/internal/pdf"
	"github.com/alnah/go-recipebox/internal/render"
)

// runRenderCmd renders recipe pages, every file of the recipes directory or
// only the given files, and optionally prints each page to PDF.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	f, files, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	timeout, err := parseTimeout(f.timeout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(&f.common, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(&f.common, cfg, env)

	loader, err := assetLoader(cfg, env, log)
	if err != nil {
		return err
	}

	backLink := f.backLink
	if backLink == "" {
		backLink = fileutil.Href(fileutil.RelativeLink(cfg.Render.OutputDir, cfg.Index.Output))
	}

	renderer, err := render.New(render.Options{
		Assets:     loader,
		Style:      cfg.Render.Style,
		DateFormat: cfg.Render.DateFormat,
		ShowSource: cfg.Render.ShowSource,
		BackLink:   backLink,
		Logger:     log,
	})
	if err != nil {
		if errors.Is(err, render.ErrStyleLoad) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.RecipeStyles))
		}
		return err
	}

	if f.pdf {
		var stop context.CancelFunc
		ctx, stop = notifyContext(ctx)
		defer stop()
	}

	var results []render.Result
	if len(files) > 0 {
		results, err = renderer.RenderFiles(ctx, files, cfg.Render.OutputDir)
	} else {
		results, err = renderer.RenderDir(ctx, cfg.Recipes.Dir, cfg.Render.OutputDir)
		if err != nil {
			err = recipesDirError(err, cfg.Recipes.Dir)
		}
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		log.Warn("no recipes to render", "dir", cfg.Recipes.Dir)
		return nil
	}

	failed := printRenderResults(results, f.common.quiet, env)

	if f.pdf {
		opts := pdf.OptionsFromEnv(env.Getenv)
		opts.Timeout = timeout
		opts.Logger = log
		pdfFailed, err := exportPDFs(ctx, env.NewConverter(opts), results, f.common.quiet, env)
		if err != nil {
			return err
		}
		failed += pdfFailed
	}

	if failed > 0 {
		return fmt.Errorf("%d page(s) failed", failed)
	}
	return nil
}

// mergeRenderFlags merges render flags into config. CLI values override config values.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	if f.outputDir != "" {
		cfg.Render.OutputDir = f.outputDir
	}
	if f.style != "" {
		cfg.Render.Style = f.style
	}
	if f.dateFormat != "" {
		cfg.Render.DateFormat = f.dateFormat
	}
	if f.showSourceSet {
		cfg.Render.ShowSource = f.showSource
	}
}

// parseTimeout parses the --timeout flag; empty means the PDF default.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: --timeout %q: %v", ErrUsage, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, d)
	}
	return d, nil
}

// printRenderResults prints one line per page and returns the failure count.
func printRenderResults(results []render.Result, quiet bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Source, r.Err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}

// exportPDFs prints every written page through c and returns the number of
// pages that failed. A browser that cannot start aborts the export with an
// error; HTML pages stay in place either way.
func exportPDFs(ctx context.Context, c pdf.Converter, results []render.Result, quiet bool, env *Environment) (int, error) {
	defer func() { _ = c.Close() }()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		out, err := pdf.Export(ctx, c, r.Output)
		if err != nil {
			if errors.Is(err, pdf.ErrBrowserConnect) {
				return failed, fmt.Errorf("%w%s", err, hints.ForBrowserConnect(env.Getenv))
			}
			if errors.Is(err, pdf.ErrPageLoad) || errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w%s", err, hints.ForTimeout())
			}
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Output, err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", out)
		}
	}
	return failed, nil
}
