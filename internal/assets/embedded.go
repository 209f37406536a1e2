package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles/*.css scripts/*.js
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader returns a loader over the built-in assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

// LoadStyle implements AssetLoader.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

// LoadScript implements AssetLoader.
func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return e.load(scriptKind, name)
}

func (e *EmbeddedLoader) load(k kind, name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(e.fsys, k.file(name))
	if err != nil {
		return "", k.missing(name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
