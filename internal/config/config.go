// Package config loads the recipebox YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/authoring"
	"github.com/alnah/go-recipebox/internal/dateutil"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/index"
	"github.com/alnah/go-recipebox/internal/logger"
	"github.com/alnah/go-recipebox/internal/render"
	"github.com/alnah/go-recipebox/internal/schema"
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "recipebox"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength  = 4096
	MaxURLLength   = 2048
	MaxTitleLength = 200
	MaxHostLength  = 253
	MaxNameLength  = 100
)

// MaxProbeTimeout caps index.probeTimeout.
const MaxProbeTimeout = 30 * time.Second

// Config holds all recipebox settings.
type Config struct {
	Recipes RecipesConfig `yaml:"recipes"`
	Schema  SchemaConfig  `yaml:"schema"`
	Index   IndexConfig   `yaml:"index"`
	Render  RenderConfig  `yaml:"render"`
	Author  AuthorConfig  `yaml:"author"`
	Assets  AssetsConfig  `yaml:"assets"`
	Log     LogConfig     `yaml:"log"`
}

// RecipesConfig locates the recipe records.
type RecipesConfig struct {
	Dir string `yaml:"dir"`
}

// SchemaConfig locates the JSON Schema. A missing file disables validation.
type SchemaConfig struct {
	Path string `yaml:"path"`
}

// IndexConfig defines the index page.
type IndexConfig struct {
	Output       string `yaml:"output"`
	Title        string `yaml:"title"`
	FormURL      string `yaml:"formURL"`      // probed before linking the authoring form
	ProbeTimeout string `yaml:"probeTimeout"` // Go duration, e.g. "1s"
}

// RenderConfig defines the recipe pages.
type RenderConfig struct {
	OutputDir  string `yaml:"outputDir"`
	Style      string `yaml:"style"`
	DateFormat string `yaml:"dateFormat"`
	ShowSource bool   `yaml:"showSource"`
}

// AuthorConfig defines the authoring form server address.
type AuthorConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines the diagnostic logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Recipes: RecipesConfig{Dir: authoring.DefaultRecipesDir},
		Schema:  SchemaConfig{Path: schema.DefaultPath},
		Index: IndexConfig{
			Output:       index.DefaultOutput,
			Title:        index.DefaultTitle,
			FormURL:      index.DefaultFormURL,
			ProbeTimeout: index.DefaultProbeTimeout.String(),
		},
		Render: RenderConfig{
			OutputDir:  render.DefaultOutputDir,
			Style:      assets.DefaultRecipeStyle,
			DateFormat: dateutil.DefaultDateFormat,
		},
		Author: AuthorConfig{Host: authoring.DefaultHost, Port: authoring.DefaultPort},
		Log:    LogConfig{Level: "info", Format: logger.FormatText},
	}
}

// ProbeTimeout returns index.probeTimeout as a duration, the default when
// unset.
func (c *Config) ProbeTimeout() time.Duration {
	if c.Index.ProbeTimeout == "" {
		return index.DefaultProbeTimeout
	}
	d, err := time.ParseDuration(c.Index.ProbeTimeout)
	if err != nil || d <= 0 {
		return index.DefaultProbeTimeout
	}
	return d
}

// Validate checks enumerations, ranges, and field lengths.
// Called automatically by LoadConfig, but available for callers
// who build a Config from flags and environment.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"recipes.dir", c.Recipes.Dir, MaxPathLength},
		{"schema.path", c.Schema.Path, MaxPathLength},
		{"index.output", c.Index.Output, MaxPathLength},
		{"index.title", c.Index.Title, MaxTitleLength},
		{"index.formURL", c.Index.FormURL, MaxURLLength},
		{"render.outputDir", c.Render.OutputDir, MaxPathLength},
		{"render.style", c.Render.Style, MaxNameLength},
		{"author.host", c.Author.Host, MaxHostLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Index.FormURL != "" && !fileutil.IsURL(c.Index.FormURL) {
		return fmt.Errorf("%w: index.formURL %q must be an http or https URL", ErrInvalidValue, c.Index.FormURL)
	}

	if c.Render.Style != "" {
		if err := assets.CheckName(c.Render.Style); err != nil {
			return fmt.Errorf("%w: render.style: %v", ErrInvalidValue, err)
		}
	}

	if c.Index.ProbeTimeout != "" {
		d, err := time.ParseDuration(c.Index.ProbeTimeout)
		if err != nil {
			return fmt.Errorf("%w: index.probeTimeout %q: %v", ErrInvalidValue, c.Index.ProbeTimeout, err)
		}
		if d <= 0 || d > MaxProbeTimeout {
			return fmt.Errorf("%w: index.probeTimeout must be between 0 and %s, got %s", ErrInvalidValue, MaxProbeTimeout, d)
		}
	}

	if c.Render.DateFormat != "" {
		if _, err := dateutil.Layout(c.Render.DateFormat); err != nil {
			return fmt.Errorf("render.dateFormat: %w", err)
		}
	}

	if c.Author.Port != 0 && (c.Author.Port < 1 || c.Author.Port > 65535) {
		return fmt.Errorf("%w: author.port must be between 1 and 65535, got %d", ErrInvalidValue, c.Author.Port)
	}

	if c.Log.Level != "" && !logger.IsLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their defaults. Returns an error if the
// file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Discover returns the path of the config named name in the standard
// locations and whether one exists.
func Discover(name string) (string, bool) {
	path, err := resolveConfigPath(name)
	return path, err == nil
}

// SearchPaths lists the locations tried for a config name, in order:
// ./<name>.yaml, ./<name>.yml, then the same in <user config dir>/recipebox/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, DefaultName, name+ext))
		}
	}
	return paths
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches SearchPaths for an existing file.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
