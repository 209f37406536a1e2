// Package cooktime turns free-text durations such as "1 hour 45 minutes"
// into minutes and groups them into the index page time buckets.
package cooktime

import (
	"regexp"
	"strconv"
	"strings"
)

// Time bucket names used by the index page filter chips.
const (
	Quick  = "quick"
	Medium = "medium"
	Long   = "long"
)

// Bucket bounds in minutes (inclusive upper bounds).
const (
	QuickMax  = 30
	MediumMax = 60
)

var digitRun = regexp.MustCompile(`\d+`)

// ParseMinutes extracts a duration in minutes from free text.
//
// The hour count is the first run of digits before the first "hour"; the
// minute count is the last whitespace-separated token before the first
// "minute", when that token is a number. Text with neither unit yields 0.
// Digits unrelated to time that precede "hour" are taken as the hour count.
func ParseMinutes(text string) int {
	text = strings.ToLower(text)
	total := 0

	if before, _, found := strings.Cut(text, "hour"); found {
		if m := digitRun.FindString(before); m != "" {
			if h, err := strconv.Atoi(m); err == nil {
				total += h * 60
			}
		}
	}

	if before, _, found := strings.Cut(text, "minute"); found {
		if fields := strings.Fields(before); len(fields) > 0 {
			if m, err := strconv.Atoi(fields[len(fields)-1]); err == nil && m >= 0 {
				total += m
			}
		}
	}

	return total
}

// Bucket returns the time bucket for a duration in minutes.
func Bucket(minutes int) string {
	switch {
	case minutes <= QuickMax:
		return Quick
	case minutes <= MediumMax:
		return Medium
	default:
		return Long
	}
}
