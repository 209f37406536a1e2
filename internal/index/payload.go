package index

import (
	"encoding/json"
	"fmt"

	"github.com/alnah/go-recipebox/internal/extract"
)

// Payload serializes summaries as the JSON array embedded in the index page.
// The output contains no raw <, > or & so it can sit inside a script
// element; a nil slice encodes as [].
func Payload(summaries []extract.Summary) ([]byte, error) {
	if summaries == nil {
		summaries = []extract.Summary{}
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadEncode, err)
	}
	return data, nil
}
