package recipe

import "errors"

// Sentinel errors for record operations.
var (
	ErrMalformed   = errors.New("malformed recipe record")
	ErrReadRecord  = errors.New("failed to read recipe record")
	ErrWriteRecord = errors.New("failed to write recipe record")
	ErrNotRecipe   = errors.New("root element is not a recipe")
)
