package assets

import "errors"

// Sentinel errors for asset lookup.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrAssetRead        = errors.New("failed to read asset")
	// ErrPathTraversal reports a symlink in the override directory that
	// leads outside of it.
	ErrPathTraversal = errors.New("asset escapes its directory")
)
