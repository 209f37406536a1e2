package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{name: "index style", load: loader.LoadStyle, asset: IndexStyle, want: "#recipe-grid"},
		{name: "form style", load: loader.LoadStyle, asset: FormStyle, want: "textarea"},
		{name: "warm style", load: loader.LoadStyle, asset: DefaultRecipeStyle, want: ".ingredients"},
		{name: "plain style", load: loader.LoadStyle, asset: "plain", want: ".meta"},
		{name: "index script", load: loader.LoadScript, asset: IndexScript, want: "data-filter"},
		{name: "unknown style", load: loader.LoadStyle, asset: "neon", wantErr: ErrStyleNotFound},
		{name: "unknown script", load: loader.LoadScript, asset: "form", wantErr: ErrScriptNotFound},
		{name: "parent reference", load: loader.LoadStyle, asset: "../index", wantErr: ErrInvalidAssetName},
		{name: "extension given", load: loader.LoadStyle, asset: "index.css", wantErr: ErrInvalidAssetName},
		{name: "empty script name", load: loader.LoadScript, asset: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("load(%q) error: %v", tt.asset, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("load(%q) should contain %q", tt.asset, tt.want)
			}
		})
	}
}

func TestBuiltinRecipeStyles(t *testing.T) {
	t.Parallel()

	for _, name := range RecipeStyles {
		if _, err := LoadStyle(name); err != nil {
			t.Errorf("LoadStyle(%q) error: %v", name, err)
		}
	}
	if _, err := LoadScript(IndexScript); err != nil {
		t.Errorf("LoadScript(%q) error: %v", IndexScript, err)
	}
}

func TestIndexScriptContract(t *testing.T) {
	t.Parallel()

	// The index page embeds its data under these names.
	script, err := LoadScript(IndexScript)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"recipe-data", "cookMinutes"} {
		if !strings.Contains(script, want) {
			t.Errorf("index script should reference %q", want)
		}
	}
}
