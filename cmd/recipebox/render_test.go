package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-recipebox/internal/pdf"
)

// stubConverter records printed pages and returns fixed bytes or err.
type stubConverter struct {
	mu     sync.Mutex
	err    error
	paths  []string
	closed bool
}

func (s *stubConverter) PrintFile(_ context.Context, htmlPath string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, htmlPath)
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

func (s *stubConverter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestRenderCmd - Page batch
// ---------------------------------------------------------------------------

func TestRenderCmd(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{
		"tomato-soup.xml": soupXML,
		"lemon-pasta.xml": pastaXML,
	})
	env := newTestEnv(t)

	if code := env.run("render", "--config", ws.config, "--date-format", "iso"); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
	}

	out := env.stdout.String()
	if !strings.Contains(out, "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary line", out)
	}

	page := readFile(t, filepath.Join(ws.pages, "tomato-soup.html"))
	if !strings.Contains(page, `href="../recipe-box.html"`) {
		t.Error("back link should point at the index page")
	}
	if !strings.Contains(page, ">2025-03-04</time>") {
		t.Error("created date should use the iso format")
	}
}

func TestRenderCmd_ReportAndContinue(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{
		"tomato-soup.xml": soupXML,
		"broken.xml":      brokenXML,
	})
	env := newTestEnv(t)

	if code := env.run("render", "--config", ws.config); code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(env.stderr.String(), "FAILED") || !strings.Contains(env.stderr.String(), "1 page(s) failed") {
		t.Errorf("stderr = %q", env.stderr)
	}
	if _, err := os.Stat(filepath.Join(ws.pages, "tomato-soup.html")); err != nil {
		t.Errorf("good page should still be written: %v", err)
	}
}

func TestRenderCmd_Files(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{
		"tomato-soup.xml": soupXML,
		"lemon-pasta.xml": pastaXML,
	})
	env := newTestEnv(t)

	soup := filepath.Join(ws.recipes, "tomato-soup.xml")
	if code := env.run("render", "--config", ws.config, "--show-source", soup); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
	}
	if !strings.Contains(readFile(t, filepath.Join(ws.pages, "tomato-soup.html")), `class="source"`) {
		t.Error("--show-source should add the source section")
	}
	if _, err := os.Stat(filepath.Join(ws.pages, "lemon-pasta.html")); !errors.Is(err, os.ErrNotExist) {
		t.Error("only the named file should be rendered")
	}
}

func TestRenderCmd_PDF(t *testing.T) {
	t.Parallel()

	t.Run("prints every page", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, map[string]string{
			"tomato-soup.xml": soupXML,
			"lemon-pasta.xml": pastaXML,
		})
		env := newTestEnv(t)
		stub := &stubConverter{}
		var got pdf.Options
		env.NewConverter = func(opts pdf.Options) pdf.Converter {
			got = opts
			return stub
		}
		env.vars["ROD_BROWSER_BIN"] = "/usr/bin/chromium"

		if code := env.run("render", "--config", ws.config, "--pdf", "--timeout", "45s"); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		if len(stub.paths) != 2 || !stub.closed {
			t.Errorf("converter printed %d pages (closed=%v), want 2 and closed", len(stub.paths), stub.closed)
		}
		if got.BrowserBin != "/usr/bin/chromium" || !got.NoSandbox || got.Timeout.String() != "45s" {
			t.Errorf("converter options = %+v", got)
		}
		if readFile(t, filepath.Join(ws.pages, "lemon-pasta.pdf")) != "%PDF-1.4 stub" {
			t.Error("PDF not written next to the page")
		}
	})

	t.Run("browser failure keeps the HTML", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, map[string]string{"tomato-soup.xml": soupXML})
		env := newTestEnv(t)
		stub := &stubConverter{err: pdf.ErrBrowserConnect}
		env.NewConverter = func(pdf.Options) pdf.Converter { return stub }

		if code := env.run("render", "--config", ws.config, "--pdf"); code != ExitBrowser {
			t.Errorf("exit code = %d, want %d", code, ExitBrowser)
		}
		if !strings.Contains(env.stderr.String(), "HTML pages are written even when PDF export fails") {
			t.Errorf("stderr should carry the browser hint, got %q", env.stderr)
		}
		if _, err := os.Stat(filepath.Join(ws.pages, "tomato-soup.html")); err != nil {
			t.Errorf("HTML page should be kept: %v", err)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if code := env.run("render", "--pdf", "--timeout", "-1s"); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

func TestRenderCmd_UnknownStyle(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{"tomato-soup.xml": soupXML})
	env := newTestEnv(t)

	if code := env.run("render", "--config", ws.config, "--style", "neon"); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(env.stderr.String(), "available: warm, plain") {
		t.Errorf("stderr should list the styles, got %q", env.stderr)
	}
}
