package assets

import (
	"fmt"
	"regexp"
)

// MaxNameLength bounds asset names.
const MaxNameLength = 64

var assetName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// CheckName reports whether name can address an asset: non-empty, at most
// MaxNameLength bytes, lowercase letters, digits, dashes and underscores.
// Separators, dots and extensions are rejected.
func CheckName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxNameLength || !assetName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
