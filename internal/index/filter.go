package index

import (
	"fmt"
	"strings"

	"github.com/alnah/go-recipebox/internal/cooktime"
	"github.com/alnah/go-recipebox/internal/extract"
)

// Chip kinds.
const (
	KindTime       = "time"
	KindDifficulty = "difficulty"
)

// Chip is one filter toggle on the index page, written "kind:value".
type Chip struct {
	Kind  string
	Value string
	Label string
}

// String returns the data-filter attribute value of the chip.
func (c Chip) String() string {
	return c.Kind + ":" + c.Value
}

// Chips lists every chip in display order.
var Chips = []Chip{
	{Kind: KindTime, Value: cooktime.Quick, Label: "Quick (30 min or less)"},
	{Kind: KindTime, Value: cooktime.Medium, Label: "31 to 60 min"},
	{Kind: KindTime, Value: cooktime.Long, Label: "Over an hour"},
	{Kind: KindDifficulty, Value: "easy", Label: "Easy"},
	{Kind: KindDifficulty, Value: "medium", Label: "Medium"},
	{Kind: KindDifficulty, Value: "hard", Label: "Hard"},
}

// ParseChip parses "kind:value" into one of the known chips.
func ParseChip(s string) (Chip, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Chips {
		if c.String() == s {
			return c, nil
		}
	}
	return Chip{}, fmt.Errorf("%w: %q", ErrInvalidChip, s)
}

// Filter mirrors the search and chip logic of the index page script.
// A summary matches when it contains Query (case-insensitive, over title,
// description, and tags) and satisfies at least one active chip. With no
// chips active only the query applies.
type Filter struct {
	Query string
	Chips []Chip
}

// Match reports whether s passes the filter.
func (f Filter) Match(s extract.Summary) bool {
	if !matchesQuery(s, strings.ToLower(strings.TrimSpace(f.Query))) {
		return false
	}
	if len(f.Chips) == 0 {
		return true
	}
	for _, c := range f.Chips {
		if c.Matches(s) {
			return true
		}
	}
	return false
}

// Apply returns the summaries that pass the filter, in input order.
func (f Filter) Apply(summaries []extract.Summary) []extract.Summary {
	var out []extract.Summary
	for _, s := range summaries {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Matches reports whether a single chip accepts s.
func (c Chip) Matches(s extract.Summary) bool {
	switch c.Kind {
	case KindTime:
		return cooktime.Bucket(s.CookMinutes) == c.Value
	case KindDifficulty:
		return s.Difficulty == c.Value
	default:
		return false
	}
}

func matchesQuery(s extract.Summary, query string) bool {
	if query == "" {
		return true
	}
	fields := append([]string{s.Title, s.Description}, s.Tags...)
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), query)
}
