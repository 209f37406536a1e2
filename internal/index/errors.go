package index

import "errors"

// Sentinel errors for index page generation.
var (
	ErrPayloadEncode = errors.New("failed to encode recipe payload")
	ErrAssetLoad     = errors.New("failed to load index asset")
	ErrUnsafeAsset   = errors.New("asset would terminate its inline element")
	ErrInvalidChip   = errors.New("invalid filter chip")
)
