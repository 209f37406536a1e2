package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSearchCmd - Command line search
// ---------------------------------------------------------------------------

func TestSearchCmd(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{
		"tomato-soup.xml": soupXML,
		"lemon-pasta.xml": pastaXML,
	})

	t.Run("query", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if code := env.run("search", "--config", ws.config, "pasta"); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		out := env.stdout.String()
		if !strings.Contains(out, "Lemon Pasta") || strings.Contains(out, "Tomato Soup") {
			t.Errorf("stdout = %q", out)
		}
		if !strings.Contains(out, filepath.Join(ws.pages, "lemon-pasta.html")) {
			t.Errorf("stdout should show the page path, got %q", out)
		}
	})

	t.Run("time filter as JSON", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if code := env.run("search", "--config", ws.config, "--time", "long", "--json"); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		var hits []searchHit
		if err := json.Unmarshal(env.stdout.Bytes(), &hits); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(hits) != 1 || hits[0].Title != "Tomato Soup" {
			t.Errorf("hits = %+v, want Tomato Soup only", hits)
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if code := env.run("search", "--config", ws.config, "curry"); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, env.stderr)
		}
		if !strings.Contains(env.stdout.String(), "No recipes found") {
			t.Errorf("stdout = %q", env.stdout)
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if code := env.run("search", "--config", ws.config, "--difficulty", "extreme"); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}
