// Package naming normalizes JSON schema names into legal Go identifiers.
// Uniqueness of generated type names is not handled here; it comes from
// deterministic prefix composition in the code generator.
package naming

import (
	"strings"
	"unicode"
)

// goReservedWords lists identifiers that cannot be used verbatim. Predeclared
// identifiers are included because generated code shadowing `string` or `true`
// is asking for trouble.
var goReservedWords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
	"any": {}, "bool": {}, "byte": {}, "error": {}, "float32": {},
	"float64": {}, "int": {}, "int64": {}, "nil": {}, "rune": {},
	"string": {}, "true": {}, "false": {}, "uint": {}, "uint64": {},
}

// FieldName converts a JSON property name into an exported Go struct field
// identifier. The second return value is the wire name to preserve in the
// field's json tag; struct fields never match their JSON keys byte for byte,
// so the rename directive is always the original key.
func FieldName(name string) (string, string) {
	return TypeName(name), name
}

// TypeName converts a JSON name into a legal exported Go type identifier:
// strip leading digits, split into words, drop anything that is not ASCII
// alphanumeric, and rejoin in PascalCase so case breaks introduced by dropped
// characters are repaired.
func TypeName(name string) string {
	return EscapeReserved(pascal(stripLeadingDigits(name)))
}

// VariantName converts an enum variant string into a Go constant suffix. The
// second return value is the original string when sanitization changed it,
// used as the wire value in the generated codec.
func VariantName(name string) (string, string) {
	sanitized := TypeName(name)
	if sanitized == name {
		return sanitized, ""
	}
	return sanitized, name
}

// DefaultFuncName derives the deterministic identifier of the nullary
// default-producer function for a field at the given name prefix.
func DefaultFuncName(prefix, fieldName string) string {
	return "default" + prefix + TypeName(fieldName)
}

// Unexport lowercases the leading rune, escaping the result if that turns it
// into a reserved word.
func Unexport(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return EscapeReserved(string(runes))
}

// EscapeReserved appends a trailing underscore when the identifier collides
// with a Go keyword or predeclared identifier.
func EscapeReserved(name string) string {
	if _, reserved := goReservedWords[name]; reserved {
		return name + "_"
	}
	return name
}

func stripLeadingDigits(name string) string {
	return strings.TrimLeft(name, "0123456789")
}

// pascal splits the input into words on separators and case boundaries, drops
// non-alphanumeric runes, and rejoins with each word title-cased.
func pascal(name string) string {
	var out strings.Builder
	for _, word := range splitWords(name) {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for i := 1; i < len(runes); i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
		out.WriteString(string(runes))
	}
	return out.String()
}

func splitWords(name string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case !isASCIIAlphanumeric(r):
			flush()
		case unicode.IsUpper(r):
			// Start a new word on lower->Upper transitions and at the end of
			// an uppercase run followed by a lowercase rune (HTTPServer ->
			// Http, Server).
			if len(current) > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if !unicode.IsUpper(prev) || (next != 0 && unicode.IsLower(next)) {
					flush()
				}
			}
			current = append(current, r)
		case unicode.IsDigit(r):
			if len(current) > 0 && !unicode.IsDigit(runes[i-1]) {
				flush()
			}
			current = append(current, r)
		default:
			if len(current) > 0 && unicode.IsDigit(runes[i-1]) {
				flush()
			}
			current = append(current, r)
		}
	}
	flush()
	return words
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
