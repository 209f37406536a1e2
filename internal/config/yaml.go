package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

var (
	errEmptyInput    = errors.New("empty config data")
	errInputTooLarge = errors.New("config exceeds maximum size")
)

// unmarshalStrict decodes data into v and rejects unknown keys.
func unmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", errInputTooLarge, len(data), MaxInputSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// Marshal encodes cfg as YAML, for printing the effective configuration.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
