package assets

import (
	"fmt"
	"path"
)

// AssetLoader returns asset contents by bare name.
type AssetLoader interface {
	// LoadStyle returns styles/<name>.css, or ErrStyleNotFound.
	LoadStyle(name string) (string, error)
	// LoadScript returns scripts/<name>.js, or ErrScriptNotFound.
	LoadScript(name string) (string, error)
}

// kind is one family of assets sharing a directory and an extension.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind  = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	scriptKind = kind{dir: "scripts", ext: ".js", notFound: ErrScriptNotFound}
)

// file returns the slash-separated location of name inside the asset tree.
func (k kind) file(name string) string {
	return path.Join(k.dir, name+k.ext)
}

// missing builds the not-found error for name.
func (k kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}
