// Package process cleans up browser processes left behind after a PDF
// export. Every call is best effort: failures are ignored because the rod
// launcher kills the main process on its own.
package process
