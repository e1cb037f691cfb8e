// Package wire is the runtime support library for generated types. Generated
// code leans on it for JSON encoding, decode-time bookkeeping (required
// fields, defaults, enum membership), and optional payload validation; it has
// no dependency back on the generator.
package wire

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// RawMessage is a raw encoded JSON value.
type RawMessage = gojson.RawMessage

// Marshal encodes a value to JSON.
func Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal decodes JSON into the supplied value.
func Unmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}

// DecodeObject splits a JSON object payload into its raw members so generated
// decoders can distinguish absent keys from explicit nulls.
func DecodeObject(data []byte) (map[string]RawMessage, error) {
	var raw map[string]RawMessage
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("wire: expected a JSON object: %w", err)
	}
	return raw, nil
}

// Ptr returns a pointer to the supplied value. Generated default producers
// use it to build optional values in a single expression.
func Ptr[T any](v T) *T {
	return &v
}

// Null is the representation of a JSON null-typed field. It encodes as the
// literal null and rejects anything else.
type Null struct{}

// MarshalJSON encodes the JSON null literal.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// UnmarshalJSON accepts only the JSON null literal.
func (*Null) UnmarshalJSON(data []byte) error {
	if string(data) != "null" {
		return fmt.Errorf("wire: expected null, got %s", data)
	}
	return nil
}
