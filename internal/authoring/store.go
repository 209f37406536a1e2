package authoring

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/recipe"
)

// DefaultRecipesDir is where new records are written.
const DefaultRecipesDir = "recipes"

// ErrInvalidSlug indicates a slug that is empty or would leave the store.
var ErrInvalidSlug = errors.New("invalid recipe slug")

// Store persists new records.
type Store interface {
	// Save writes rec under slug and returns the written path. An existing
	// record with the same slug is replaced.
	Save(slug string, rec *recipe.Record) (string, error)
}

// Compile-time interface check.
var _ Store = (*DirStore)(nil)

// DirStore writes records as <Dir>/<slug>.xml, creating Dir on demand.
type DirStore struct {
	Dir string
}

// NewDirStore returns a store rooted at dir, DefaultRecipesDir when empty.
func NewDirStore(dir string) *DirStore {
	if dir == "" {
		dir = DefaultRecipesDir
	}
	return &DirStore{Dir: dir}
}

// Save implements Store.
func (s *DirStore) Save(slug string, rec *recipe.Record) (string, error) {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`+"\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}

	data, err := rec.Marshal()
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.Dir, slug+recipe.FileExtension)
	if err := fileutil.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("%w: %v", recipe.ErrWriteRecord, err)
	}
	return path, nil
}
