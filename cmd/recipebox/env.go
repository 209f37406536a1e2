package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/pdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, asset loading, and the PDF printer.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	// AssetLoader overrides asset resolution; nil resolves from assets.basePath.
	AssetLoader assets.AssetLoader
	// NewConverter builds the PDF printer for render --pdf.
	NewConverter func(pdf.Options) pdf.Converter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewConverter: func(opts pdf.Options) pdf.Converter {
			return pdf.New(opts)
		},
	}
}
