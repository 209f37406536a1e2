package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIndexCmd - Extraction and index page
// ---------------------------------------------------------------------------

func TestIndexCmd(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{
		"tomato-soup.xml": soupXML,
		"lemon-pasta.xml": pastaXML,
		"untitled.xml":    untitledXML,
		"broken.xml":      brokenXML,
	})
	env := newTestEnv(t)

	if code := env.run("index", "--config", ws.config, "--title", "Family Recipes"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, env.stderr)
	}

	if !strings.Contains(env.stdout.String(), "Created "+ws.index+" (3 recipes, 1 invalid, 1 skipped)") {
		t.Errorf("stdout = %q", env.stdout)
	}
	if !strings.Contains(env.stderr.String(), "SKIPPED") || !strings.Contains(env.stderr.String(), "broken.xml") {
		t.Errorf("stderr should name the skipped file, got %q", env.stderr)
	}

	page := readFile(t, ws.index)
	for _, want := range []string{
		"<h1>Family Recipes</h1>",
		`"title":"Tomato Soup"`,
		`"page":"recipes/lemon-pasta.html"`,
		`"valid":false`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestIndexCmd_FormLink(t *testing.T) {
	t.Parallel()

	t.Run("reachable form is linked", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ws := newWorkspace(t, map[string]string{"tomato-soup.xml": soupXML})
		env := newTestEnv(t)
		env.vars["RECIPEBOX_FORM_URL"] = srv.URL + "/"

		if code := env.run("index", "--config", ws.config); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		if !strings.Contains(readFile(t, ws.index), `href="`+srv.URL+`/"`) {
			t.Error("index page should link the reachable form")
		}
	})

	t.Run("absent form is omitted", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL + "/"
		srv.Close()

		ws := newWorkspace(t, map[string]string{"tomato-soup.xml": soupXML})
		env := newTestEnv(t)

		if code := env.run("index", "--config", ws.config, "--form-url", url, "--probe-timeout", "200ms"); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		if strings.Contains(readFile(t, ws.index), url) {
			t.Error("index page should not link an unreachable form")
		}
	})
}

func TestIndexCmd_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing recipes directory", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, nil)
		env := newTestEnv(t)
		missing := filepath.Join(ws.root, "nowhere")

		if code := env.run("index", "--config", ws.config, "--recipes", missing); code != ExitIO {
			t.Errorf("exit code = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(env.stderr.String(), "hint:") {
			t.Errorf("stderr should carry a hint, got %q", env.stderr)
		}
	})

	t.Run("invalid probe timeout", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, nil)
		env := newTestEnv(t)
		if code := env.run("index", "--config", ws.config, "--probe-timeout", "forever"); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("output parent is a file", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, nil)
		blocker := filepath.Join(ws.root, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		env := newTestEnv(t)
		if code := env.run("index", "--config", ws.config, "-o", filepath.Join(blocker, "index.html")); code != ExitIO {
			t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitIO, env.stderr)
		}
	})
}
