package recipe

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
)

// MaxRecordSize limits how much of a record file is read (1MB).
const MaxRecordSize = 1 << 20

// Parse decodes a recipe record. The root element must be recipe, with or
// without the default namespace.
func Parse(data []byte) (*Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if len(data) > MaxRecordSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrMalformed, len(data), MaxRecordSize)
	}

	var rec Record
	if err := xml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rec.XMLName.Local != "recipe" {
		return nil, fmt.Errorf("%w: got <%s>", ErrNotRecipe, rec.XMLName.Local)
	}
	return &rec, nil
}

// ParseFile reads and decodes the record at path.
func ParseFile(path string) (*Record, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from directory listing or CLI
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadRecord, err)
	}
	return Parse(data)
}

// Marshal encodes the record as indented XML with a declaration.
// The default namespace is always written on the root element.
func (r *Record) Marshal() ([]byte, error) {
	out := *r
	out.XMLName = xml.Name{Local: "recipe"}
	out.Xmlns = Namespace

	body, err := xml.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteRecord, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
