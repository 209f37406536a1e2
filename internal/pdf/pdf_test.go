package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestOptionsFromEnv - Browser environment
// ---------------------------------------------------------------------------

func TestOptionsFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		env         map[string]string
		wantBin     string
		wantSandbox bool
	}{
		{name: "defaults", env: map[string]string{}, wantSandbox: true},
		{name: "CI disables sandbox", env: map[string]string{"CI": "true"}},
		{name: "CI=false keeps sandbox", env: map[string]string{"CI": "false"}, wantSandbox: true},
		{name: "pre-installed browser", env: map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}, wantBin: "/usr/bin/chromium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := OptionsFromEnv(func(k string) string { return tt.env[k] })
			if opts.BrowserBin != tt.wantBin {
				t.Errorf("BrowserBin = %q, want %q", opts.BrowserBin, tt.wantBin)
			}
			if opts.NoSandbox == tt.wantSandbox {
				t.Errorf("NoSandbox = %v, want %v", opts.NoSandbox, !tt.wantSandbox)
			}
		})
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	t.Parallel()

	if p := New(Options{}); p.opts.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", p.opts.Timeout, DefaultTimeout)
	}
	if p := New(Options{Timeout: time.Second}); p.opts.Timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", p.opts.Timeout)
	}
}

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	opts := printOptions()
	if *opts.PaperWidth != letterWidth || *opts.PaperHeight != letterHeight {
		t.Errorf("paper = %vx%v, want letter", *opts.PaperWidth, *opts.PaperHeight)
	}
	for name, m := range map[string]*float64{"top": opts.MarginTop, "bottom": opts.MarginBottom, "left": opts.MarginLeft, "right": opts.MarginRight} {
		if *m != cardMargin {
			t.Errorf("margin %s = %v, want %v", name, *m, cardMargin)
		}
	}
	if !opts.PrintBackground {
		t.Error("backgrounds should be printed")
	}
}

func TestPrinter_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	if err := New(Options{}).Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestPrinter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Options{})
	if _, err := p.PrintFile(ctx, "page.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if p.browser != nil {
		t.Error("no browser should start for a cancelled context")
	}
}

// ---------------------------------------------------------------------------
// TestExport - Writing next to the page
// ---------------------------------------------------------------------------

type stubConverter struct {
	data []byte
	err  error
	got  string
}

func (s *stubConverter) PrintFile(_ context.Context, htmlPath string) ([]byte, error) {
	s.got = htmlPath
	return s.data, s.err
}

func (s *stubConverter) Close() error { return nil }

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("writes pdf beside html", func(t *testing.T) {
		t.Parallel()

		page := filepath.Join(t.TempDir(), "soup.html")
		stub := &stubConverter{data: []byte("%PDF-1.4 test")}

		out, err := Export(context.Background(), stub, page)
		if err != nil {
			t.Fatalf("Export() error: %v", err)
		}
		if want := filepath.Join(filepath.Dir(page), "soup.pdf"); out != want {
			t.Errorf("Export() = %q, want %q", out, want)
		}
		if stub.got != page {
			t.Errorf("printed %q, want %q", stub.got, page)
		}
		data, err := os.ReadFile(out)
		if err != nil || string(data) != "%PDF-1.4 test" {
			t.Errorf("written = %q, %v", data, err)
		}
	})

	t.Run("browser error passes through", func(t *testing.T) {
		t.Parallel()

		stub := &stubConverter{err: fmt.Errorf("%w: boom", ErrPageLoad)}
		_, err := Export(context.Background(), stub, filepath.Join(t.TempDir(), "x.html"))
		if !errors.Is(err, ErrPageLoad) {
			t.Errorf("error = %v, want ErrPageLoad", err)
		}
		if !IsBrowserError(err) {
			t.Error("IsBrowserError() = false, want true")
		}
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		filepath.Join("web", "recipes", "soup.html"): filepath.Join("web", "recipes", "soup.pdf"),
		"noext": "noext.pdf",
	}
	for in, want := range tests {
		if got := Path(in); got != want {
			t.Errorf("Path(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsBrowserError(t *testing.T) {
	t.Parallel()

	if IsBrowserError(errors.New("disk full")) {
		t.Error("plain error classified as browser error")
	}
	if !IsBrowserError(fmt.Errorf("%w: x", ErrBrowserConnect)) {
		t.Error("ErrBrowserConnect not classified")
	}
}
