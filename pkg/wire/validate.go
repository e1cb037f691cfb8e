package wire

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	gojson "github.com/goccy/go-json"
)

// Validator checks a JSON payload against the captured schema text before
// decoding. Full-draft validation engines are external collaborators; swap in
// a different implementation by assigning DefaultValidator.
type Validator interface {
	Validate(schemaJSON, payload []byte) error
}

// DefaultValidator backs the generated validate-on-decode entry points.
var DefaultValidator Validator = schemaValidator{}

// ValidationError wraps a payload rejection from the validator.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wire: payload does not match schema: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UnmarshalValidated validates the payload against the schema text with the
// default validator, then decodes it into v.
func UnmarshalValidated(data, schemaJSON []byte, v any) error {
	if err := DefaultValidator.Validate(schemaJSON, data); err != nil {
		return err
	}
	return Unmarshal(data, v)
}

// schemaValidator validates payloads with kin-openapi's schema visitor. The
// minimal vocabulary the generator accepts sits inside what openapi3.Schema
// understands, with the exception of $ref targets, which the visitor cannot
// chase without a document loader.
type schemaValidator struct{}

func (schemaValidator) Validate(schemaJSON, payload []byte) error {
	sch := openapi3.NewSchema()
	if err := sch.UnmarshalJSON(schemaJSON); err != nil {
		return fmt.Errorf("wire: compile validation schema: %w", err)
	}

	var value any
	if err := gojson.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("wire: decode payload for validation: %w", err)
	}

	if err := sch.VisitJSON(value); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
