package main

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/alnah/go-recipebox/internal/authoring"
	"github.com/alnah/go-recipebox/internal/config"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/hints"
)

// runAuthorCmd writes the sample recipe or serves the authoring form.
// --create-sample wins when both modes are given.
func runAuthorCmd(ctx context.Context, args []string, env *Environment) error {
	f, err := parseAuthorFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if !f.createSample && !f.serve {
		printAuthorUsage(env.Stderr)
		return fmt.Errorf("%w: author needs --create-sample or --serve", ErrUsage)
	}

	cfg, err := loadConfig(&f.common, env)
	if err != nil {
		return err
	}
	mergeAuthorFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(&f.common, cfg, env)

	service := authoring.NewService(authoring.NewDirStore(cfg.Recipes.Dir), env.Now, log)

	if f.createSample {
		path, err := service.CreateSample()
		if err != nil {
			return outputError(err)
		}
		if !f.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
		return nil
	}

	loader, err := assetLoader(cfg, env, log)
	if err != nil {
		return err
	}
	server, err := authoring.NewServer(authoring.ServerOptions{
		Service: service,
		Assets:  loader,
		HomeURL: fileutil.FileURL(cfg.Index.Output),
		Logger:  log,
	})
	if err != nil {
		return err
	}

	ctx, stop := notifyContext(ctx)
	defer stop()

	addr := authoring.Addr(cfg.Author.Host, cfg.Author.Port)
	err = server.Serve(ctx, addr, func(a net.Addr) {
		if !f.common.quiet {
			fmt.Fprintf(env.Stdout, "Serving the recipe form on http://%s/ (Ctrl+C to stop)\n", a)
		}
	})
	if errors.Is(err, authoring.ErrListen) {
		return fmt.Errorf("%w%s", err, hints.ForAddressInUse(cfg.Author.Port))
	}
	return err
}

// mergeAuthorFlags merges author flags into config. CLI values override config values.
func mergeAuthorFlags(f *authorFlags, cfg *config.Config) {
	if f.host != "" {
		cfg.Author.Host = f.host
	}
	if f.portSet {
		cfg.Author.Port = f.port
	}
}
