package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alnah/go-recipebox/internal/pdf"
)

const soupXML = `<?xml version="1.0" encoding="UTF-8"?>
<recipe xmlns="http://www.example.com/recipe">
  <title>Tomato Soup</title>
  <description>
    <summary>Warm and simple.</summary>
    <tags><tag>soup</tag><tag>vegan</tag></tags>
  </description>
  <metadata>
    <servings>3</servings>
    <totalTime>1 hour 5 minutes</totalTime>
    <difficulty>easy</difficulty>
  </metadata>
  <ingredients><ingredient>6 tomatoes</ingredient></ingredients>
  <category>soup</category>
  <preparation><step number="1">Simmer.</step></preparation>
  <created>2025-03-04T10:00:00Z</created>
</recipe>
`

const pastaXML = `<?xml version="1.0" encoding="UTF-8"?>
<recipe xmlns="http://www.example.com/recipe">
  <title>Lemon Pasta</title>
  <description>
    <summary>Bright and quick.</summary>
    <tags><tag>pasta</tag><tag>quick</tag></tags>
  </description>
  <metadata>
    <servings>2</servings>
    <totalTime>20 minutes</totalTime>
    <difficulty>easy</difficulty>
  </metadata>
  <ingredients><ingredient>200g spaghetti</ingredient></ingredients>
  <category>main-course</category>
  <preparation><step number="1">Boil.</step></preparation>
  <created>2025-03-04T10:00:00Z</created>
</recipe>
`

const untitledXML = `<recipe>
  <metadata><servings>2</servings></metadata>
  <ingredients><ingredient>salt</ingredient></ingredients>
  <preparation><step number="1">Mix.</step></preparation>
</recipe>
`

const brokenXML = "<recipe><title>"

// shippedSchema is the repository schema, relative to this package.
const shippedSchema = "../../schemas/recipe.schema.json"

// testEnv is an Environment with captured output and a private environment.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(key string) string { return te.vars[key] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
		NewConverter: func(pdf.Options) pdf.Converter {
			t.Fatal("unexpected PDF converter")
			return nil
		},
	}
	return te
}

func (te *testEnv) run(args ...string) int {
	return runMain(context.Background(), args, te.Environment)
}

// workspace is a temporary project: recipes, output paths, and a config
// file pointing at them.
type workspace struct {
	root    string
	recipes string
	index   string
	pages   string
	config  string
}

// newWorkspace writes files into <root>/recipes and a config that disables
// the form link and validates against the shipped schema.
func newWorkspace(t *testing.T, files map[string]string) *workspace {
	t.Helper()

	root := t.TempDir()
	ws := &workspace{
		root:    root,
		recipes: filepath.Join(root, "recipes"),
		index:   filepath.Join(root, "web", "recipe-box.html"),
		pages:   filepath.Join(root, "web", "recipes"),
		config:  filepath.Join(root, "recipebox.yaml"),
	}
	if err := os.MkdirAll(ws.recipes, 0o750); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(ws.recipes, name), []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	schemaPath, err := filepath.Abs(shippedSchema)
	if err != nil {
		t.Fatal(err)
	}
	cfg := fmt.Sprintf(`recipes:
  dir: '%s'
schema:
  path: '%s'
index:
  output: '%s'
  formURL: ""
render:
  outputDir: '%s'
log:
  level: error
`, filepath.ToSlash(ws.recipes), filepath.ToSlash(schemaPath), filepath.ToSlash(ws.index), filepath.ToSlash(ws.pages))
	if err := os.WriteFile(ws.config, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return ws
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
