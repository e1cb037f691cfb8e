package model

import (
	"strings"

	"github.com/goliatone/go-structgen/pkg/naming"
)

// RefTarget is the symbolic destination of a $ref. Only two forms are legal:
// the schema root, or a named subschema under the definitions section. The
// target is stored symbolically and never expanded into the field tree, which
// is what keeps self-referential and mutually referential types finite.
type RefTarget struct {
	subschema string
	root      bool
}

// RefToRoot returns a target pointing at the schema root.
func RefToRoot() RefTarget {
	return RefTarget{root: true}
}

// RefToSubschema returns a target pointing at a named subschema.
func RefToSubschema(name string) RefTarget {
	return RefTarget{subschema: name}
}

// IsRoot reports whether the target is the schema root.
func (t RefTarget) IsRoot() bool {
	return t.root
}

// SubschemaName returns the referenced definition name, empty for root refs.
func (t RefTarget) SubschemaName() string {
	return t.subschema
}

// TypeName mangles the target into the emitted Go type name. rootName is the
// already-emitted root type identifier. Subschema names get a literal "Def"
// infix after the root name, keeping them out of the prefix space the root's
// own nested types occupy.
func (t RefTarget) TypeName(rootName string) string {
	if t.root {
		return rootName
	}
	return rootName + "Def" + naming.TypeName(t.subschema)
}

// ParseRefPath resolves a $ref path string into a RefTarget. Anything other
// than "#", "#/$defs/<name>" or "#/definitions/<name>" is rejected.
func ParseRefPath(ref, path string) (RefTarget, error) {
	if ref == "#" {
		return RefToRoot(), nil
	}
	segments := strings.Split(ref, "/")
	if len(segments) == 3 && segments[0] == "#" && (segments[1] == "$defs" || segments[1] == "definitions") && segments[2] != "" {
		return RefToSubschema(segments[2]), nil
	}
	return RefTarget{}, &NameResolutionError{
		Ref:     ref,
		Path:    path,
		Message: "ref paths must reference the schema root or a named subschema",
	}
}
