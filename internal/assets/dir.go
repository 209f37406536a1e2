package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirLoader serves assets from a directory laid out like the built-in tree.
// Each read opens the directory as an os.Root, which refuses to follow
// links out of it.
type DirLoader struct {
	base string
}

// NewDirLoader checks that base is a readable directory.
func NewDirLoader(base string) (*DirLoader, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer func() { _ = root.Close() }()

	info, err := root.Stat(".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	return &DirLoader{base: abs}, nil
}

// Dir returns the absolute directory served.
func (d *DirLoader) Dir() string {
	return d.base
}

// LoadStyle implements AssetLoader.
func (d *DirLoader) LoadStyle(name string) (string, error) {
	return d.load(styleKind, name)
}

// LoadScript implements AssetLoader.
func (d *DirLoader) LoadScript(name string) (string, error) {
	return d.load(scriptKind, name)
}

func (d *DirLoader) load(k kind, name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}

	root, err := os.OpenRoot(d.base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer func() { _ = root.Close() }()

	rel := filepath.FromSlash(k.file(name))
	data, err := root.ReadFile(rel)
	if err == nil {
		return string(data), nil
	}

	// A link that leaves the root fails to read while the link itself exists.
	if info, lerr := root.Lstat(rel); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, k.file(name))
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "", k.missing(name)
	}
	return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
}

var _ AssetLoader = (*DirLoader)(nil)
