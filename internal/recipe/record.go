// Package recipe defines the on-disk recipe record, its defaulted view,
// and the slug rules used to name recipe files.
package recipe

import "encoding/xml"

// Namespace is the default XML namespace of recipe records.
const Namespace = "http://www.example.com/recipe"

// FileExtension is the extension of recipe record files.
const FileExtension = ".xml"

// Record mirrors the XML tree of a recipe file.
// Optional elements are pointers so that absent elements stay distinguishable
// from empty ones; schema validation relies on that distinction.
type Record struct {
	XMLName     xml.Name     `xml:"recipe"`
	Xmlns       string       `xml:"xmlns,attr,omitempty"`
	Title       *string      `xml:"title"`
	Description *Description `xml:"description"`
	Metadata    *Metadata    `xml:"metadata"`
	Ingredients *Ingredients `xml:"ingredients"`
	Category    *string      `xml:"category"`
	Preparation *Preparation `xml:"preparation"`
	Created     *string      `xml:"created"`
	Unknown     []Element    `xml:",any"`
}

// Description holds the summary and optional tag list.
type Description struct {
	Summary *string   `xml:"summary"`
	Tags    *Tags     `xml:"tags"`
	Unknown []Element `xml:",any"`
}

// Tags wraps the repeated tag element.
type Tags struct {
	Tag     []string  `xml:"tag"`
	Unknown []Element `xml:",any"`
}

// Metadata holds servings, free-text total time, and difficulty.
type Metadata struct {
	Servings   *string   `xml:"servings"`
	TotalTime  *string   `xml:"totalTime"`
	Difficulty *string   `xml:"difficulty"`
	Unknown    []Element `xml:",any"`
}

// Ingredients wraps the repeated ingredient element.
type Ingredients struct {
	Items   []string  `xml:"ingredient"`
	Unknown []Element `xml:",any"`
}

// Preparation wraps the ordered step elements.
type Preparation struct {
	Steps   []StepElement `xml:"step"`
	Unknown []Element     `xml:",any"`
}

// StepElement is one preparation step. Number is kept as text so a bad
// attribute value does not make the whole file unreadable.
type StepElement struct {
	Number string `xml:"number,attr,omitempty"`
	Text   string `xml:",chardata"`
}

// Element is a child element outside the record vocabulary. It is kept
// so validation can reject it and Marshal can write it back unchanged.
type Element struct {
	XMLName xml.Name
	Inner   string `xml:",innerxml"`
}

// ptr returns a pointer to s.
func ptr(s string) *string {
	return &s
}
