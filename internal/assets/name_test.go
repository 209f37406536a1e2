package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckName(t *testing.T) {
	t.Parallel()

	valid := []string{"warm", "plain", "my-style", "v2_dark", "0"}
	for _, name := range valid {
		if err := CheckName(name); err != nil {
			t.Errorf("CheckName(%q) error: %v", name, err)
		}
	}

	invalid := []string{
		"",
		"..",
		"../warm",
		"styles/warm",
		`styles\warm`,
		"warm.css",
		"Warm",
		"-warm",
		"warm style",
		strings.Repeat("a", MaxNameLength+1),
	}
	for _, name := range invalid {
		if err := CheckName(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("CheckName(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}
