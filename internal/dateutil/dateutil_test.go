package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "iso tokens", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long month", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "short tokens", format: "D/M/YY", want: "2/1/06"},
		{name: "preset", format: "european", want: "02/01/2006"},
		{name: "preset case-insensitive", format: "LONG", want: "January 2, 2006"},
		{name: "bracket literal", format: "[Made] MMM YYYY", want: "Made Jan 2006"},
		{name: "empty format", format: "", wantErr: true},
		{name: "unclosed bracket", format: "[YYYY", wantErr: true},
		{name: "too long", format: "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Fatalf("error = %v, want ErrInvalidDateFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

	got, err := Format(ts, DefaultDateFormat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "March 4, 2025" {
		t.Errorf("Format = %q, want March 4, 2025", got)
	}
}
