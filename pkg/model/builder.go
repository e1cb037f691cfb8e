package model

import (
	"strconv"

	"github.com/goliatone/go-structgen/pkg/schema"
)

// BuildOptions carries the invocation surface that shapes the model. The
// schema document itself arrives separately.
type BuildOptions struct {
	// Name overrides the schema title as the top-level type identifier.
	Name string
	// Unexported lowers the visibility of every generated identifier.
	Unexported bool
	// EmitDocs embeds a simplified definition listing in the top-level doc
	// comment.
	EmitDocs bool
	// CaptureSchema retains the raw schema text for decode-time validation.
	CaptureSchema bool
	// Debug dumps the emitted definition set to the diagnostic sink.
	Debug bool
}

// Build parses a schema document into a SchemaModel. The whole compile aborts
// on the first structural violation; there is no partial output.
func Build(root *schema.Object, raw []byte, opts BuildOptions) (*SchemaModel, error) {
	title, _, err := root.StringProp("title")
	if err != nil {
		return nil, structuralf("#", "%v", err)
	}
	description, _, err := root.StringProp("description")
	if err != nil {
		return nil, structuralf("#", "%v", err)
	}

	name := opts.Name
	if name == "" {
		name = title
	}
	if name == "" {
		return nil, &ConfigurationError{Message: "no type identifier specified in schema or request"}
	}

	subschemas, err := buildSubschemas(root)
	if err != nil {
		return nil, err
	}

	rootInfo := FieldInfo{Name: name, Description: description, Required: true}
	if err := assertValueType(root, "object", "#"); err != nil {
		return nil, err
	}
	rootType, err := buildObject(root, "#")
	if err != nil {
		return nil, err
	}

	m := &SchemaModel{
		Exported:    !opts.Unexported,
		Name:        name,
		Description: description,
		Subschemas:  subschemas,
		Root:        rootType,
		RootInfo:    rootInfo,
		EmitDocs:    opts.EmitDocs,
		Debug:       opts.Debug,
	}
	if opts.CaptureSchema {
		m.ValidateSchema = append([]byte(nil), raw...)
	}

	if err := checkRefs(m); err != nil {
		return nil, err
	}
	return m, nil
}

// buildSubschemas reads the definitions section. "$defs" wins when both
// spellings are present; the other section is ignored rather than merged,
// matching the reference behavior.
func buildSubschemas(root *schema.Object) ([]Subschema, error) {
	keyword := "$defs"
	defs, present, err := root.ObjectProp(keyword)
	if err != nil {
		return nil, structuralf("#", "%v", err)
	}
	if !present {
		keyword = "definitions"
		defs, _, err = root.ObjectProp(keyword)
		if err != nil {
			return nil, structuralf("#", "%v", err)
		}
	}
	if defs == nil {
		return nil, nil
	}

	subschemas := make([]Subschema, 0, defs.Len())
	for _, name := range defs.Keys() {
		value, _ := defs.Get(name)
		info := FieldInfo{Name: name, Required: true, Subschema: true}
		field, err := buildField(value, info, joinPath("#", keyword, name))
		if err != nil {
			return nil, err
		}
		subschemas = append(subschemas, Subschema{Name: name, Field: field})
	}
	return subschemas, nil
}

// buildField structurally classifies a schema value and recursively builds a
// Field. Classification priority: $ref, then enum when no type is declared,
// then tuple for arrays with prefixItems, then the declared type string.
func buildField(value any, info FieldInfo, path string) (Field, error) {
	obj, ok := value.(*schema.Object)
	if !ok {
		return Field{}, structuralf(path, "schema must be an object, got %s", schema.TypeOf(value))
	}

	description, _, err := obj.StringProp("description")
	if err != nil {
		return Field{}, structuralf(path, "%v", err)
	}
	info.Description = description

	fieldType, err := buildFieldType(obj, info, path)
	if err != nil {
		return Field{}, err
	}
	return Field{Info: info, Type: fieldType}, nil
}

func buildFieldType(obj *schema.Object, info FieldInfo, path string) (FieldType, error) {
	if obj.Has("$ref") {
		return buildRef(obj, path)
	}

	typeName, hasType, err := obj.StringProp("type")
	if err != nil {
		return nil, structuralf(path, "value type must be a string")
	}
	if !hasType {
		if obj.Has("enum") {
			return buildEnum(obj, path)
		}
		return nil, structuralf(path, "value type not specified")
	}

	def := captureDefault(obj)
	switch typeName {
	case "null":
		return NullType{Def: def}, nil
	case "boolean":
		return BooleanType{Def: def}, nil
	case "integer":
		return IntegerType{Def: def}, nil
	case "number":
		return NumberType{Def: def}, nil
	case "string":
		return StringType{Def: def}, nil
	case "array":
		if obj.Has("prefixItems") {
			return buildTuple(obj, info, path)
		}
		return buildArray(obj, info, path)
	case "object":
		return buildObject(obj, path)
	default:
		return nil, structuralf(path, "unknown JSON type %q", typeName)
	}
}

func buildArray(obj *schema.Object, info FieldInfo, path string) (FieldType, error) {
	itemsValue, ok := obj.Get("items")
	if !ok {
		return nil, structuralf(path, "array must have property `items`")
	}

	// Item requiredness follows the array field's own requiredness, so an
	// optional array carries optional elements.
	itemInfo := info
	items, err := buildField(itemsValue, itemInfo, joinPath(path, "items"))
	if err != nil {
		return nil, err
	}
	return ArrayType{Items: items, Def: captureDefault(obj)}, nil
}

func buildObject(obj *schema.Object, path string) (ObjectType, error) {
	properties, _, err := obj.ObjectProp("properties")
	if err != nil {
		return ObjectType{}, structuralf(path, "%v", err)
	}
	requiredList, _, err := obj.ArrayProp("required")
	if err != nil {
		return ObjectType{}, structuralf(path, "%v", err)
	}

	requiredSet := make(map[string]struct{}, len(requiredList))
	for _, raw := range requiredList {
		name, ok := raw.(string)
		if !ok {
			return ObjectType{}, structuralf(path, "required property names must be strings")
		}
		requiredSet[name] = struct{}{}
	}

	var fields []Field
	for _, name := range properties.Keys() {
		value, _ := properties.Get(name)
		_, required := requiredSet[name]
		info := FieldInfo{Name: name, Required: required}
		field, err := buildField(value, info, joinPath(path, "properties", name))
		if err != nil {
			return ObjectType{}, err
		}
		fields = append(fields, field)
	}
	return ObjectType{Fields: fields, Def: captureDefault(obj)}, nil
}

func buildEnum(obj *schema.Object, path string) (FieldType, error) {
	variantValues, present, err := obj.ArrayProp("enum")
	if err != nil {
		return nil, structuralf(path, "%v", err)
	}
	if !present || len(variantValues) == 0 {
		return nil, structuralf(path, "no enum variants specified")
	}

	variants := make([]string, 0, len(variantValues))
	for _, raw := range variantValues {
		variant, ok := raw.(string)
		if !ok {
			return nil, structuralf(path, "enum variants must be strings, got %s", schema.TypeOf(raw))
		}
		variants = append(variants, variant)
	}
	return EnumType{Variants: variants, Def: captureDefault(obj)}, nil
}

func buildTuple(obj *schema.Object, info FieldInfo, path string) (FieldType, error) {
	prefixItems, _, err := obj.ArrayProp("prefixItems")
	if err != nil {
		return nil, structuralf(path, "%v", err)
	}
	if len(prefixItems) == 0 {
		return nil, structuralf(path, "tuple must declare at least one prefix item")
	}

	items := make([]Field, 0, len(prefixItems))
	for index, itemValue := range prefixItems {
		itemInfo := FieldInfo{Name: info.Name + strconv.Itoa(index), Required: true}
		item, err := buildField(itemValue, itemInfo, joinPath(path, "prefixItems", strconv.Itoa(index)))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return TupleType{Items: items, Def: captureDefault(obj)}, nil
}

func buildRef(obj *schema.Object, path string) (FieldType, error) {
	ref, _, err := obj.StringProp("$ref")
	if err != nil {
		return nil, structuralf(path, "%v", err)
	}
	target, err := ParseRefPath(ref, path)
	if err != nil {
		return nil, err
	}
	return RefType{Target: target, Ref: ref, Def: captureDefault(obj)}, nil
}

func captureDefault(obj *schema.Object) DefaultValue {
	raw, ok := obj.Get("default")
	if !ok {
		return DefaultValue{}
	}
	return DefaultValue{Value: raw, Set: true}
}

func assertValueType(obj *schema.Object, want, path string) error {
	got, has, err := obj.StringProp("type")
	if err != nil {
		return structuralf(path, "%v", err)
	}
	if !has {
		return structuralf(path, "no type specified")
	}
	if got != want {
		return structuralf(path, "mismatched types, expected %q, got %q", want, got)
	}
	return nil
}

// checkRefs walks the finished tree and rejects refs to subschemas that were
// never declared. Ref targets stay symbolic, so this is the only place a
// dangling name can surface before emission.
func checkRefs(m *SchemaModel) error {
	var walk func(field Field, path string) error
	walk = func(field Field, path string) error {
		switch t := field.Type.(type) {
		case RefType:
			if t.Target.IsRoot() {
				return nil
			}
			if _, ok := m.Subschema(t.Target.SubschemaName()); !ok {
				return &NameResolutionError{
					Ref:     t.Ref,
					Path:    path,
					Message: "subschema is not declared",
				}
			}
		case ArrayType:
			return walk(t.Items, joinPath(path, "items"))
		case ObjectType:
			for _, inner := range t.Fields {
				if err := walk(inner, joinPath(path, "properties", inner.Info.Name)); err != nil {
					return err
				}
			}
		case TupleType:
			for index, item := range t.Items {
				if err := walk(item, joinPath(path, "prefixItems", strconv.Itoa(index))); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, sub := range m.Subschemas {
		if err := walk(sub.Field, joinPath("#", "$defs", sub.Name)); err != nil {
			return err
		}
	}
	for _, field := range m.Root.Fields {
		if err := walk(field, joinPath("#", "properties", field.Info.Name)); err != nil {
			return err
		}
	}
	return nil
}
