package cooktime

import "testing"

func TestParseMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  int
	}{
		{input: "1 hour 45 minutes", want: 105},
		{input: "30 minutes", want: 30},
		{input: "2 hours", want: 120},
		{input: "", want: 0},
		{input: "a while", want: 0},
		{input: "1 Hour 5 Minutes", want: 65},
		{input: "about 3 hours", want: 180},
		{input: "90 minutes", want: 90},
		{input: "many minutes", want: 0},
		{input: "0 minutes", want: 0},
		{input: "2 hours and 10 minutes", want: 130},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := ParseMinutes(tt.input); got != tt.want {
				t.Errorf("ParseMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		minutes int
		want    string
	}{
		{0, Quick},
		{30, Quick},
		{31, Medium},
		{60, Medium},
		{61, Long},
		{240, Long},
	}

	for _, tt := range tests {
		if got := Bucket(tt.minutes); got != tt.want {
			t.Errorf("Bucket(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
