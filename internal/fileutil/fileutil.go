// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Permissions for generated directories and files.
const (
	DirPermissions  = 0o750
	FilePermissions = 0o644
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrOutputDirectory        = errors.New("failed to create output directory")
	ErrWriteFile              = errors.New("failed to write file")
	ErrReadDirectory          = errors.New("failed to read directory")
)

// WriteFile writes data to path, creating missing parent directories.
// An existing file is overwritten.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputDirectory, err)
		}
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil { // #nosec G306 -- generated pages must be world-readable
		return fmt.Errorf("%w: %v", ErrWriteFile, err)
	}
	return nil
}

// ListByExtension returns the regular files directly inside dir whose
// extension matches ext (case-insensitive, with or without the dot),
// sorted by name. Subdirectories are not descended.
func ListByExtension(dir, ext string) ([]string, error) {
	ext = strings.TrimPrefix(ext, ".")
	if err := ValidateExtension(ext); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDirectory, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(strings.TrimPrefix(filepath.Ext(name), "."), ext) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "warm" -> false (style name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/path.css" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an HTTP(S) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FileURL returns a file:// URL for path, made absolute first. Characters
// such as '#', '?' and '%' are percent-encoded.
func FileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	return (&url.URL{Scheme: "file", Path: abs}).String()
}

// Href percent-encodes a slash-separated relative path for use as a link.
func Href(rel string) string {
	return (&url.URL{Path: rel}).EscapedPath()
}

// RelativeLink returns the slash-separated path from directory fromDir to
// target, suitable for an href. It falls back to target itself when no
// relative path exists (different volumes on Windows).
func RelativeLink(fromDir, target string) string {
	from, err := filepath.Abs(fromDir)
	if err != nil {
		return filepath.ToSlash(target)
	}
	to, err := filepath.Abs(target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	rel, err := filepath.Rel(from, to)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
