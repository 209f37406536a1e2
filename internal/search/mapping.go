package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/alnah/go-recipebox/internal/extract"
)

// Indexed field names.
const (
	fieldFile        = "file"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldTags        = "tags"
	fieldDifficulty  = "difficulty"
	fieldCategory    = "category"
	fieldCookMinutes = "cook_minutes"
)

// buildIndexMapping maps recipe summaries: English full text on title and
// description, exact keywords for tags and the enumerations, and a numeric
// cook time for the time buckets.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(fieldTitle, titleFieldMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	docMapping.AddFieldMappingsAt(fieldDescription, descFieldMapping)

	// Keyword analyzer keeps compound tags intact (e.g. "gluten-free").
	for _, name := range []string{fieldFile, fieldTags, fieldDifficulty, fieldCategory} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		docMapping.AddFieldMappingsAt(name, fm)
	}

	docMapping.AddFieldMappingsAt(fieldCookMinutes, bleve.NewNumericFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// document returns the indexed form of a summary. Field names match the
// mapping.
func document(s extract.Summary) map[string]any {
	return map[string]any{
		fieldFile:        s.File,
		fieldTitle:       s.Title,
		fieldDescription: s.Description,
		fieldTags:        s.Tags,
		fieldDifficulty:  s.Difficulty,
		fieldCategory:    s.Category,
		fieldCookMinutes: float64(s.CookMinutes),
	}
}
