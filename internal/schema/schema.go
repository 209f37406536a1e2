// Package schema validates recipe records against an optional JSON Schema
// document.
//
// Records are XML on disk; before validation they are projected into a JSON
// document with the same shape (one object per element, repeated elements
// as arrays, numeric servings and step numbers as integers). Elements absent
// from the file are absent from the projection; elements outside the record
// vocabulary are projected under their local name so the schema can reject
// them. A root element in a foreign namespace is reported directly.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/alnah/go-recipebox/internal/recipe"
)

// DefaultPath is the schema location relative to the working directory.
const DefaultPath = "schemas/recipe.schema.json"

// maxSchemaSize limits how much of a schema file is read (1MB).
const maxSchemaSize = 1 << 20

// Sentinel errors for schema loading.
var (
	ErrSchemaRead    = errors.New("failed to read schema")
	ErrSchemaCompile = errors.New("failed to compile schema")
)

// Validator checks records against a compiled schema. A nil Validator
// accepts every record.
type Validator struct {
	schema *jsonschema.Schema
	source string
}

// Result is the outcome of validating one record.
type Result struct {
	Valid  bool
	Errors []string
}

// Load compiles the schema at path. A missing file returns a nil Validator
// and no error, which disables validation.
func Load(path string) (*Validator, error) {
	f, err := os.Open(path) // #nosec G304 -- schema path is user-provided config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSchemaRead, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxSchemaSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaRead, err)
	}
	if len(data) > maxSchemaSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrSchemaRead, path, maxSchemaSize)
	}
	return Compile(path, data)
}

// Compile builds a Validator from schema bytes. name identifies the
// schema in diagnostics.
func Compile(name string, data []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	const resource = "recipe.schema.json"
	if err := compiler.AddResource(resource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaCompile, name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaCompile, name, err)
	}
	return &Validator{schema: compiled, source: name}, nil
}

// Source returns the name the schema was loaded from.
func (v *Validator) Source() string {
	if v == nil {
		return ""
	}
	return v.source
}

// Validate checks rec and collects one diagnostic per failing leaf.
// It never fails: projection problems are reported as diagnostics.
func (v *Validator) Validate(rec *recipe.Record) Result {
	if v == nil {
		return Result{Valid: true}
	}
	if rec == nil {
		return Result{Errors: []string{"#: no record"}}
	}

	var issues []string
	if ns := rec.XMLName.Space; ns != "" && ns != recipe.Namespace {
		issues = append(issues, fmt.Sprintf("#: root element is in namespace %q, want %q", ns, recipe.Namespace))
	}

	doc, err := project(rec)
	if err != nil {
		return Result{Errors: append(issues, "#: "+err.Error())}
	}

	if err := v.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return Result{Errors: append(issues, "#: "+err.Error())}
		}
		leaves := collect(verr)
		if len(leaves) == 0 {
			leaves = []string{"#: " + strings.TrimSpace(verr.Message)}
		}
		issues = append(issues, leaves...)
	}

	if len(issues) > 0 {
		return Result{Errors: issues}
	}
	return Result{Valid: true}
}

// collect flattens the leaf causes of a validation error into
// "location: message" strings.
func collect(err *jsonschema.ValidationError) []string {
	var issues []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if !strings.HasPrefix(location, "#") {
				location = "#" + location
			}
			issues = append(issues, location+": "+strings.TrimSpace(node.Message))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// project converts rec to the generic JSON value the validator expects.
// The document goes through encoding/json so every value has a JSON type.
func project(rec *recipe.Record) (any, error) {
	doc := map[string]any{}
	putText(doc, "title", rec.Title)
	putText(doc, "category", rec.Category)
	putText(doc, "created", rec.Created)
	putUnknown(doc, rec.Unknown)

	if d := rec.Description; d != nil {
		desc := map[string]any{}
		putText(desc, "summary", d.Summary)
		if d.Tags != nil {
			tags := map[string]any{"tag": trimmed(d.Tags.Tag)}
			putUnknown(tags, d.Tags.Unknown)
			desc["tags"] = tags
		}
		putUnknown(desc, d.Unknown)
		doc["description"] = desc
	}

	if m := rec.Metadata; m != nil {
		meta := map[string]any{}
		if m.Servings != nil {
			meta["servings"] = numberOrText(*m.Servings)
		}
		putText(meta, "totalTime", m.TotalTime)
		putText(meta, "difficulty", m.Difficulty)
		putUnknown(meta, m.Unknown)
		doc["metadata"] = meta
	}

	if in := rec.Ingredients; in != nil {
		ingredients := map[string]any{"ingredient": trimmed(in.Items)}
		putUnknown(ingredients, in.Unknown)
		doc["ingredients"] = ingredients
	}

	if p := rec.Preparation; p != nil {
		steps := make([]any, 0, len(p.Steps))
		for _, s := range p.Steps {
			step := map[string]any{"text": strings.TrimSpace(s.Text)}
			if s.Number != "" {
				step["number"] = numberOrText(s.Number)
			}
			steps = append(steps, step)
		}
		prep := map[string]any{"step": steps}
		putUnknown(prep, p.Unknown)
		doc["preparation"] = prep
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func putText(dst map[string]any, key string, s *string) {
	if s != nil {
		dst[key] = strings.TrimSpace(*s)
	}
}

// putUnknown projects foreign elements as text under their local name.
// A name that collides with a known key is left to the known value.
func putUnknown(dst map[string]any, elems []recipe.Element) {
	for _, e := range elems {
		if _, taken := dst[e.XMLName.Local]; !taken {
			dst[e.XMLName.Local] = strings.TrimSpace(e.Inner)
		}
	}
}

func trimmed(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimSpace(item)
	}
	return out
}

// numberOrText returns an int when s is an integer, otherwise the trimmed text.
func numberOrText(s string) any {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
