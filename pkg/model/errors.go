package model

import "fmt"

// StructuralError reports a schema value whose shape falls outside the
// supported vocabulary. The whole compilation aborts on the first one; there
// is no local recovery.
type StructuralError struct {
	// Path is the JSON pointer of the offending fragment.
	Path    string
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("model: %s at %s", e.Message, e.Path)
}

func structuralf(path, format string, args ...any) error {
	return &StructuralError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// NameResolutionError reports an illegal or dangling $ref.
type NameResolutionError struct {
	Ref     string
	Path    string
	Message string
}

func (e *NameResolutionError) Error() string {
	return fmt.Sprintf("model: ref %q: %s at %s", e.Ref, e.Message, e.Path)
}

// ConfigurationError reports an invocation that cannot yield a compilable
// model, such as a schema with no derivable top-level identifier.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "model: " + e.Message
}
