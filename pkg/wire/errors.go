package wire

import "fmt"

// MissingFieldError reports a required object member absent from the payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("wire: missing required field %q", e.Field)
}

// MissingField wraps a field name in a MissingFieldError.
func MissingField(name string) error {
	return &MissingFieldError{Field: name}
}

// FieldDecodeError anchors a nested decode failure to the member it occurred
// in.
type FieldDecodeError struct {
	Field string
	Err   error
}

func (e *FieldDecodeError) Error() string {
	return fmt.Sprintf("wire: field %q: %v", e.Field, e.Err)
}

func (e *FieldDecodeError) Unwrap() error {
	return e.Err
}

// DecodeFieldError wraps err with the member name it occurred in.
func DecodeFieldError(name string, err error) error {
	return &FieldDecodeError{Field: name, Err: err}
}

// UnknownVariantError reports a wire string that matches none of an enum's
// declared variants.
type UnknownVariantError struct {
	Type  string
	Value string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("wire: %q is not a valid %s", e.Value, e.Type)
}

// UnknownVariant constructs an UnknownVariantError.
func UnknownVariant(typeName, value string) error {
	return &UnknownVariantError{Type: typeName, Value: value}
}

// InvalidVariant reports an enum value outside its declared range, which can
// only happen when a value is constructed by hand and then marshaled.
func InvalidVariant(typeName string, value int) error {
	return fmt.Errorf("wire: %d is not a valid %s", value, typeName)
}

// ArityError reports a JSON array whose length does not match a tuple's
// declared prefix items.
type ArityError struct {
	Type string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wire: %s expects %d items, got %d", e.Type, e.Want, e.Got)
}

// WrongArity constructs an ArityError.
func WrongArity(typeName string, want, got int) error {
	return &ArityError{Type: typeName, Want: want, Got: got}
}
