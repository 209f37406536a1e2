// Package search runs offline full-text queries over recipe summaries with
// an in-memory bleve index.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/alnah/go-recipebox/internal/cooktime"
	"github.com/alnah/go-recipebox/internal/extract"
	"github.com/alnah/go-recipebox/internal/logger"
	"github.com/alnah/go-recipebox/internal/recipe"
)

// DefaultLimit caps the number of hits when Params.Limit is zero.
const DefaultLimit = 20

// Sentinel errors for search operations.
var (
	ErrIndexBuild   = errors.New("failed to build search index")
	ErrSearch       = errors.New("search failed")
	ErrInvalidParam = errors.New("invalid search parameter")
)

// Index is an in-memory full-text index of recipe summaries. It is built
// once and never persisted.
type Index struct {
	index bleve.Index
	docs  map[string]extract.Summary
	log   *slog.Logger
}

// New indexes summaries. Summary.File is the document ID; a later summary
// with the same file replaces an earlier one.
func New(summaries []extract.Summary, log *slog.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexBuild, err)
	}

	docs := make(map[string]extract.Summary, len(summaries))
	batch := idx.NewBatch()
	for _, s := range summaries {
		if err := batch.Index(s.File, document(s)); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrIndexBuild, s.File, err)
		}
		docs[s.File] = s
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("%w: %v", ErrIndexBuild, err)
	}

	l := logger.OrDiscard(log)
	l.Debug("search index built", "documents", len(docs))
	return &Index{index: idx, docs: docs, log: l}, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// Params selects recipes. Empty fields do not filter.
type Params struct {
	// Query is matched against title, description, and tags.
	Query string
	// Difficulty keeps only recipes with this exact difficulty.
	Difficulty string
	// Time keeps only recipes in this cook time bucket (quick, medium, long).
	Time string
	// Category keeps only recipes in this category.
	Category string
	// Limit caps the number of hits; DefaultLimit when zero.
	Limit int
}

// Validate checks the enumerated filters.
func (p Params) Validate() error {
	if p.Difficulty != "" && !recipe.IsDifficulty(p.Difficulty) {
		return fmt.Errorf("%w: difficulty %q (want %s)", ErrInvalidParam, p.Difficulty, strings.Join(recipe.Difficulties, ", "))
	}
	if p.Category != "" && !recipe.IsCategory(p.Category) {
		return fmt.Errorf("%w: category %q", ErrInvalidParam, p.Category)
	}
	switch p.Time {
	case "", cooktime.Quick, cooktime.Medium, cooktime.Long:
	default:
		return fmt.Errorf("%w: time %q (want %s, %s, %s)", ErrInvalidParam, p.Time, cooktime.Quick, cooktime.Medium, cooktime.Long)
	}
	if p.Limit < 0 {
		return fmt.Errorf("%w: limit %d", ErrInvalidParam, p.Limit)
	}
	return nil
}

// Hit is one matching recipe.
type Hit struct {
	Summary extract.Summary
	Score   float64
}

// Result holds the hits in relevance order and the total match count.
type Result struct {
	Total uint64
	Hits  []Hit
}

// Search runs p against the index. Without a query every recipe matching
// the filters is returned in file name order.
func (i *Index) Search(ctx context.Context, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	limit := p.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(p), limit, 0, false)
	if strings.TrimSpace(p.Query) == "" {
		req.SortBy([]string{fieldFile})
	} else {
		req.SortBy([]string{"-_score", fieldFile})
	}

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSearch, err)
	}

	out := Result{Total: res.Total, Hits: make([]Hit, 0, len(res.Hits))}
	for _, h := range res.Hits {
		s, ok := i.docs[h.ID]
		if !ok {
			continue
		}
		out.Hits = append(out.Hits, Hit{Summary: s, Score: h.Score})
	}
	i.log.Debug("search", "query", p.Query, "total", res.Total, "took", res.Took)
	return out, nil
}

// buildQuery combines the text query (OR across fields) with the filters
// (AND).
func buildQuery(p Params) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(p.Query); q != "" {
		titleMatch := bleve.NewMatchQuery(q)
		titleMatch.SetField(fieldTitle)
		titleMatch.SetBoost(3.0)

		descMatch := bleve.NewMatchQuery(q)
		descMatch.SetField(fieldDescription)

		tagMatch := bleve.NewTermQuery(strings.ToLower(q))
		tagMatch.SetField(fieldTags)
		tagMatch.SetBoost(2.0)

		textQueries := []query.Query{titleMatch, descMatch, tagMatch}

		// Prefix on title for partial words (minimum 2 chars).
		if len(q) >= 2 && !strings.ContainsAny(q, " \t") {
			prefix := bleve.NewPrefixQuery(strings.ToLower(q))
			prefix.SetField(fieldTitle)
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if p.Difficulty != "" {
		queries = append(queries, termQuery(fieldDifficulty, p.Difficulty))
	}
	if p.Category != "" {
		queries = append(queries, termQuery(fieldCategory, p.Category))
	}
	if p.Time != "" {
		queries = append(queries, bucketQuery(p.Time))
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

func termQuery(field, value string) query.Query {
	tq := bleve.NewTermQuery(value)
	tq.SetField(field)
	return tq
}

// bucketQuery selects cook minutes within a time bucket, bounds included
// the way cooktime.Bucket draws them.
func bucketQuery(bucket string) query.Query {
	var minV, maxV *float64
	switch bucket {
	case cooktime.Quick:
		maxV = floatPtr(cooktime.QuickMax)
	case cooktime.Medium:
		minV, maxV = floatPtr(cooktime.QuickMax+1), floatPtr(cooktime.MediumMax)
	default:
		minV = floatPtr(cooktime.MediumMax + 1)
	}
	inclusive := true
	rq := bleve.NewNumericRangeInclusiveQuery(minV, maxV, &inclusive, &inclusive)
	rq.SetField(fieldCookMinutes)
	return rq
}

func floatPtr(n int) *float64 {
	f := float64(n)
	return &f
}
