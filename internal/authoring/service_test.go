package authoring

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-recipebox/internal/extract"
	"github.com/alnah/go-recipebox/internal/recipe"
	"github.com/alnah/go-recipebox/internal/schema"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// TestDirStore - Record persistence
// ---------------------------------------------------------------------------

func TestDirStore(t *testing.T) {
	t.Parallel()

	t.Run("creates directory and replaces existing", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "recipes")
		store := NewDirStore(dir)

		first := recipe.New(recipe.Recipe{Title: "Soup"}, fixedClock())
		path, err := store.Save("soup", first)
		if err != nil {
			t.Fatalf("Save() error: %v", err)
		}
		if want := filepath.Join(dir, "soup.xml"); path != want {
			t.Errorf("Save() path = %q, want %q", path, want)
		}

		second := recipe.New(recipe.Recipe{Title: "Soup", Servings: 6}, fixedClock())
		if _, err := store.Save("soup", second); err != nil {
			t.Fatalf("second Save() error: %v", err)
		}

		rec, err := recipe.ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile() error: %v", err)
		}
		if got := rec.Recipe().Servings; got != 6 {
			t.Errorf("Servings = %d, want 6 (last write wins)", got)
		}
	})

	t.Run("rejects unsafe slugs", func(t *testing.T) {
		t.Parallel()

		store := NewDirStore(t.TempDir())
		for _, slug := range []string{"", "..", "a/b", `a\b`} {
			_, err := store.Save(slug, recipe.New(recipe.Recipe{}, fixedClock()))
			if !errors.Is(err, ErrInvalidSlug) {
				t.Errorf("Save(%q) error = %v, want ErrInvalidSlug", slug, err)
			}
		}
	})

	t.Run("default directory", func(t *testing.T) {
		t.Parallel()

		if got := NewDirStore("").Dir; got != DefaultRecipesDir {
			t.Errorf("Dir = %q, want %q", got, DefaultRecipesDir)
		}
	})
}

// ---------------------------------------------------------------------------
// TestService - Record creation
// ---------------------------------------------------------------------------

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := NewService(NewDirStore(dir), fixedClock, nil)

	sub := SampleSubmission()
	sub.Title = "Apple Pie, Deluxe!"
	path, err := svc.Create(sub)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if want := filepath.Join(dir, "apple-pie-deluxe.xml"); path != want {
		t.Errorf("Create() path = %q, want %q", path, want)
	}

	rec, err := recipe.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	rc := rec.Recipe()
	if rc.Title != "Apple Pie, Deluxe!" {
		t.Errorf("Title = %q", rc.Title)
	}
	if rc.Created != "2025-03-04T10:00:00Z" {
		t.Errorf("Created = %q, want the injected clock", rc.Created)
	}
	if len(rc.Steps) == 0 || rc.Steps[0].Text != "Cook pasta according to package instructions." {
		t.Errorf("Steps = %+v", rc.Steps)
	}
}

func TestServiceCreate_AccentedTitle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := SampleSubmission()
	sub.Title = "Crème Brûlée"
	path, err := NewService(NewDirStore(dir), fixedClock, nil).Create(sub)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if got := filepath.Base(path); got != "creme-brulee.xml" {
		t.Errorf("file = %q, want creme-brulee.xml", got)
	}
}

func TestServiceCreate_StoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	svc := NewService(failingStore{err: boom}, fixedClock, nil)

	if _, err := svc.Create(SampleSubmission()); !errors.Is(err, boom) {
		t.Errorf("Create() error = %v, want %v", err, boom)
	}
}

type failingStore struct{ err error }

func (f failingStore) Save(string, *recipe.Record) (string, error) { return "", f.err }

// TestSampleRoundTrip writes the sample and reads it back through the
// extractor and the shipped schema.
func TestSampleRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := NewService(NewDirStore(dir), fixedClock, nil).CreateSample()
	if err != nil {
		t.Fatalf("CreateSample() error: %v", err)
	}
	if got := filepath.Base(path); got != "sample-lemon-pasta.xml" {
		t.Errorf("file = %q, want sample-lemon-pasta.xml", got)
	}

	v, err := schema.Load(filepath.Join("..", "..", "schemas", "recipe.schema.json"))
	if err != nil || v == nil {
		t.Fatalf("schema.Load() = %v, %v", v, err)
	}

	report, err := (&extract.Extractor{Validator: v}).ExtractDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExtractDir() error: %v", err)
	}
	if len(report.Summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(report.Summaries))
	}

	s := report.Summaries[0]
	if s.Title != "Sample Lemon Pasta" || s.Difficulty != "easy" || s.Category != "main-course" {
		t.Errorf("summary = %+v", s)
	}
	if s.Servings != 2 || s.CookMinutes != 20 {
		t.Errorf("Servings = %d, CookMinutes = %d, want 2 and 20", s.Servings, s.CookMinutes)
	}
	if !slices.Contains(s.Tags, "pasta") {
		t.Errorf("Tags = %v, want pasta", s.Tags)
	}
	if !s.Valid {
		t.Errorf("sample should satisfy the schema: %v", s.Errors)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `xmlns="http://www.example.com/recipe"`) {
		t.Error("sample record does not declare the recipe namespace")
	}
}
