package main

import (
	"errors"
	"os"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/authoring"
	"github.com/alnah/go-recipebox/internal/config"
	"github.com/alnah/go-recipebox/internal/dateutil"
	"github.com/alnah/go-recipebox/internal/extract"
	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/index"
	"github.com/alnah/go-recipebox/internal/pdf"
	"github.com/alnah/go-recipebox/internal/recipe"
	"github.com/alnah/go-recipebox/internal/render"
	"github.com/alnah/go-recipebox/internal/schema"
	"github.com/alnah/go-recipebox/internal/search"
)

// Exit codes for the recipebox CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error, or some pages failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, address in use
	ExitBrowser = 4 // Browser/Chrome errors
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if pdf.IsBrowserError(err) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, extract.ErrRecipesDir) ||
		errors.Is(err, fileutil.ErrOutputDirectory) ||
		errors.Is(err, fileutil.ErrWriteFile) ||
		errors.Is(err, fileutil.ErrReadDirectory) ||
		errors.Is(err, recipe.ErrReadRecord) ||
		errors.Is(err, recipe.ErrWriteRecord) ||
		errors.Is(err, schema.ErrSchemaRead) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, authoring.ErrListen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, schema.ErrSchemaCompile) ||
		errors.Is(err, render.ErrStyleLoad) ||
		errors.Is(err, render.ErrUnsafeStyle) ||
		errors.Is(err, index.ErrAssetLoad) ||
		errors.Is(err, index.ErrUnsafeAsset) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrScriptNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, search.ErrInvalidParam) ||
		errors.Is(err, authoring.ErrInvalidSubmission) {
		return ExitUsage
	}

	return ExitGeneral
}
