package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/config"
	"github.com/alnah/go-recipebox/internal/hints"
	"github.com/alnah/go-recipebox/internal/logger"
)

// loadConfig resolves the config file in order: --config, RECIPEBOX_CONFIG,
// then the default name when such a file exists. With none of them the
// built-in defaults apply. Environment values and the common flags are
// applied on top; command flags are merged by the caller.
func loadConfig(f *commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	if !f.quiet && env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	name := configSource(f, envCfg)
	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if f.recipes != "" {
		cfg.Recipes.Dir = f.recipes
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger on stderr. --verbose forces debug
// and --quiet forces error, whatever the configured level.
func newLogger(f *commonFlags, cfg *config.Config, env *Environment) *slog.Logger {
	level := logger.ParseLevel(cfg.Log.Level)
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return logger.New(logger.Config{
		Writer: env.Stderr,
		Format: cfg.Log.Format,
		Level:  level,
	})
}

// assetLoader returns the environment's loader, or one resolving
// assets.basePath over the embedded assets.
func assetLoader(cfg *config.Config, env *Environment, log *slog.Logger) (assets.AssetLoader, error) {
	if env.AssetLoader != nil {
		return env.AssetLoader, nil
	}
	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	if resolver.Overridden() {
		log.Debug("asset overrides enabled", "dir", cfg.Assets.BasePath)
	}
	return resolver, nil
}

// configSource returns the config name or path to load, "" for defaults.
func configSource(f *commonFlags, envCfg *envConfig) string {
	if f.config != "" {
		return f.config
	}
	if envCfg.ConfigPath != "" {
		return envCfg.ConfigPath
	}
	if path, ok := config.Discover(config.DefaultName); ok {
		return path
	}
	return ""
}
