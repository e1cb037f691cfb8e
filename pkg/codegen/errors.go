package codegen

import "fmt"

// TypeMismatchError reports a declared default whose JSON shape does not
// match the field it belongs to.
type TypeMismatchError struct {
	Field   string
	Message string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("codegen: default for field %q: %s", e.Field, e.Message)
}

func mismatchf(field, format string, args ...any) error {
	return &TypeMismatchError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IdentifierError reports a schema name that sanitizes down to nothing, so no
// Go identifier can be derived from it.
type IdentifierError struct {
	Name string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("codegen: name %q does not yield a Go identifier", e.Name)
}
