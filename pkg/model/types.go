// Package model builds the typed intermediate representation of a schema: an
// immutable tree of tagged field variants that the code generator consumes in
// a single pass.
package model

// Kind discriminates the members of the FieldType union.
type Kind string

const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindEnum    Kind = "enum"
	KindTuple   Kind = "tuple"
	KindRef     Kind = "ref"
)

// DefaultValue carries a raw default as it appeared in the schema. Set
// distinguishes an explicit null default from no default at all.
type DefaultValue struct {
	Value any
	Set   bool
}

// FieldInfo is the per-position metadata attached to every field. It is
// immutable once the tree is built.
type FieldInfo struct {
	// Name is the original JSON key, or a synthetic name for tuple items.
	Name        string
	Description string
	Required    bool
	// Subschema marks top-level named definitions.
	Subschema bool
}

// Field pairs position metadata with a type variant.
type Field struct {
	Info FieldInfo
	Type FieldType
}

// FieldType is the closed union of schema shapes. Consumers dispatch with a
// type switch; no variant outside this package satisfies the interface.
type FieldType interface {
	Kind() Kind
	Default() DefaultValue
	fieldType()
}

// NullType accepts only JSON null.
type NullType struct{ Def DefaultValue }

// BooleanType is a JSON boolean.
type BooleanType struct{ Def DefaultValue }

// IntegerType is a JSON integer.
type IntegerType struct{ Def DefaultValue }

// NumberType is a JSON number.
type NumberType struct{ Def DefaultValue }

// StringType is a JSON string.
type StringType struct{ Def DefaultValue }

// ArrayType is a homogeneous sequence described by a single item field.
type ArrayType struct {
	Items Field
	Def   DefaultValue
}

// ObjectType is an ordered collection of named properties. Order follows the
// schema's properties declaration and fixes the emitted field order.
type ObjectType struct {
	Fields []Field
	Def    DefaultValue
}

// Property looks up a property field by its JSON key.
func (t ObjectType) Property(name string) (Field, bool) {
	for _, field := range t.Fields {
		if field.Info.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// EnumType is a closed set of string variants.
type EnumType struct {
	Variants []string
	Def      DefaultValue
}

// TupleType is a fixed-arity heterogeneous sequence. Items are always
// required regardless of the tuple field's own requiredness.
type TupleType struct {
	Items []Field
	Def   DefaultValue
}

// RefType is a symbolic reference to the root or a named subschema. Ref
// keeps the path string exactly as the schema spelled it, so diagnostics can
// echo it back regardless of which definitions keyword was used.
type RefType struct {
	Target RefTarget
	Ref    string
	Def    DefaultValue
}

func (t NullType) Kind() Kind    { return KindNull }
func (t BooleanType) Kind() Kind { return KindBoolean }
func (t IntegerType) Kind() Kind { return KindInteger }
func (t NumberType) Kind() Kind  { return KindNumber }
func (t StringType) Kind() Kind  { return KindString }
func (t ArrayType) Kind() Kind   { return KindArray }
func (t ObjectType) Kind() Kind  { return KindObject }
func (t EnumType) Kind() Kind    { return KindEnum }
func (t TupleType) Kind() Kind   { return KindTuple }
func (t RefType) Kind() Kind     { return KindRef }

func (t NullType) Default() DefaultValue    { return t.Def }
func (t BooleanType) Default() DefaultValue { return t.Def }
func (t IntegerType) Default() DefaultValue { return t.Def }
func (t NumberType) Default() DefaultValue  { return t.Def }
func (t StringType) Default() DefaultValue  { return t.Def }
func (t ArrayType) Default() DefaultValue   { return t.Def }
func (t ObjectType) Default() DefaultValue  { return t.Def }
func (t EnumType) Default() DefaultValue    { return t.Def }
func (t TupleType) Default() DefaultValue   { return t.Def }
func (t RefType) Default() DefaultValue     { return t.Def }

func (NullType) fieldType()    {}
func (BooleanType) fieldType() {}
func (IntegerType) fieldType() {}
func (NumberType) fieldType()  {}
func (StringType) fieldType()  {}
func (ArrayType) fieldType()   {}
func (ObjectType) fieldType()  {}
func (EnumType) fieldType()    {}
func (TupleType) fieldType()   {}
func (RefType) fieldType()     {}

// CreatesDefs reports whether the field type introduces a new named type of
// its own when emitted.
func CreatesDefs(t FieldType) bool {
	switch t.(type) {
	case ObjectType, EnumType:
		return true
	default:
		return false
	}
}

// Subschema is a named definition declared under the schema's definitions
// section.
type Subschema struct {
	Name  string
	Field Field
}

// SchemaModel is the top-level compilation unit: invocation configuration
// resolved against the schema document plus the fully built field tree. It is
// built once, consumed once by the emitter, and never mutated.
type SchemaModel struct {
	// Exported controls the visibility of every generated identifier.
	Exported    bool
	Name        string
	Description string
	// Subschemas preserve declaration order.
	Subschemas []Subschema
	Root       ObjectType
	RootInfo   FieldInfo

	// EmitDocs embeds a simplified definition listing in the top-level doc
	// comment.
	EmitDocs bool
	// ValidateSchema holds the captured schema text when decode-time
	// validation was requested, nil otherwise.
	ValidateSchema []byte
	// Debug dumps the emitted definition set to the diagnostic sink.
	Debug bool
}

// Subschema looks up a named definition.
func (m *SchemaModel) Subschema(name string) (Subschema, bool) {
	for _, sub := range m.Subschemas {
		if sub.Name == name {
			return sub, true
		}
	}
	return Subschema{}, false
}
