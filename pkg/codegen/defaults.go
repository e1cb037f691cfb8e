package codegen

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-structgen/pkg/model"
	"github.com/goliatone/go-structgen/pkg/naming"
	"github.com/goliatone/go-structgen/pkg/schema"
)

// synthesize turns a raw default value into a Go construction expression for
// the field's type. Refs never synthesize; they return the empty string and
// callers fall back to nil.
func (e *emitter) synthesize(t model.FieldType, raw any, info model.FieldInfo, ctx fieldContext) (string, error) {
	switch t := t.(type) {
	case model.NullType:
		if raw != nil {
			return "", mismatchf(info.Name, "expected null, got %s", schema.TypeOf(raw))
		}
		return wrapOptional("wire.Null{}", info.Required), nil

	case model.BooleanType:
		b, ok := raw.(bool)
		if !ok {
			return "", mismatchf(info.Name, "expected boolean, got %s", schema.TypeOf(raw))
		}
		return wrapOptional(strconv.FormatBool(b), info.Required), nil

	case model.IntegerType:
		n, ok := raw.(int64)
		if !ok {
			return "", mismatchf(info.Name, "expected integer, got %s", schema.TypeOf(raw))
		}
		return wrapOptional("int64("+strconv.FormatInt(n, 10)+")", info.Required), nil

	case model.NumberType:
		var f float64
		switch n := raw.(type) {
		case float64:
			f = n
		case int64:
			f = float64(n)
		default:
			return "", mismatchf(info.Name, "expected number, got %s", schema.TypeOf(raw))
		}
		return wrapOptional("float64("+strconv.FormatFloat(f, 'g', -1, 64)+")", info.Required), nil

	case model.StringType:
		s, ok := raw.(string)
		if !ok {
			return "", mismatchf(info.Name, "expected string, got %s", schema.TypeOf(raw))
		}
		return wrapOptional(strconv.Quote(s), info.Required), nil

	case model.ArrayType:
		return e.synthesizeArray(t, raw, info, ctx)

	case model.ObjectType:
		return e.synthesizeObject(t, raw, info, ctx)

	case model.EnumType:
		return e.synthesizeEnum(t, raw, info, ctx)

	case model.TupleType:
		return e.synthesizeTuple(t, raw, info, ctx)

	case model.RefType:
		return "", nil
	}
	return "", mismatchf(info.Name, "unhandled field kind %q", t.Kind())
}

func (e *emitter) synthesizeArray(t model.ArrayType, raw any, info model.FieldInfo, ctx fieldContext) (string, error) {
	values, ok := raw.([]any)
	if !ok {
		return "", mismatchf(info.Name, "expected array, got %s", schema.TypeOf(raw))
	}

	inner := fieldContext{prefix: ctx.prefix + "Items"}
	itemType, err := e.typeExprOf(t.Items, inner)
	if err != nil {
		return "", err
	}

	elems := make([]string, 0, len(values))
	for _, value := range values {
		expr, err := e.synthesize(t.Items.Type, value, t.Items.Info, inner)
		if err != nil {
			return "", err
		}
		if expr == "" {
			expr = "nil"
		}
		elems = append(elems, expr)
	}
	literal := "[]" + itemType + "{" + strings.Join(elems, ", ") + "}"
	return wrapOptional(literal, info.Required), nil
}

// synthesizeObject builds a struct literal. A property missing from the raw
// value falls back to the property's own declared default, then to nil when
// the property is optional; a required property with neither is an error.
func (e *emitter) synthesizeObject(t model.ObjectType, raw any, info model.FieldInfo, ctx fieldContext) (string, error) {
	obj, ok := raw.(*schema.Object)
	if !ok {
		return "", mismatchf(info.Name, "expected object, got %s", schema.TypeOf(raw))
	}
	structName, err := e.typeName(info, ctx)
	if err != nil {
		return "", err
	}

	inner := fieldContext{prefix: structName}
	members := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		var expr string
		if value, present := obj.Get(f.Info.Name); present {
			expr, err = e.synthesize(f.Type, value, f.Info, inner)
		} else if own := f.Type.Default(); own.Set {
			expr, err = e.synthesize(f.Type, own.Value, f.Info, inner)
		} else if !f.Info.Required {
			expr = "nil"
		} else {
			return "", mismatchf(f.Info.Name, "property is not nullable")
		}
		if err != nil {
			return "", err
		}
		if expr == "" {
			expr = "nil"
		}
		ident, _ := naming.FieldName(f.Info.Name)
		members = append(members, ident+": "+expr)
	}
	literal := structName + "{" + strings.Join(members, ", ") + "}"
	return wrapOptional(literal, info.Required), nil
}

func (e *emitter) synthesizeEnum(t model.EnumType, raw any, info model.FieldInfo, ctx fieldContext) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", mismatchf(info.Name, "expected string, got %s", schema.TypeOf(raw))
	}
	name, err := e.typeName(info, ctx)
	if err != nil {
		return "", err
	}

	want, _ := naming.VariantName(s)
	for _, variant := range t.Variants {
		sanitized, _ := naming.VariantName(variant)
		if sanitized == want {
			return wrapOptional(name+sanitized, info.Required), nil
		}
	}
	return "", mismatchf(info.Name, "%q is not a declared variant", s)
}

func (e *emitter) synthesizeTuple(t model.TupleType, raw any, info model.FieldInfo, ctx fieldContext) (string, error) {
	values, ok := raw.([]any)
	if !ok {
		return "", mismatchf(info.Name, "expected array, got %s", schema.TypeOf(raw))
	}
	if len(values) != len(t.Items) {
		return "", mismatchf(info.Name, "tuple definition and default values have different lengths")
	}
	name, err := e.typeName(info, ctx)
	if err != nil {
		return "", err
	}

	inner := fieldContext{prefix: ctx.prefix}
	members := make([]string, 0, len(t.Items))
	for index, item := range t.Items {
		expr, err := e.synthesize(item.Type, values[index], item.Info, inner)
		if err != nil {
			return "", err
		}
		if expr == "" {
			expr = "nil"
		}
		ident, _ := naming.FieldName(item.Info.Name)
		members = append(members, ident+": "+expr)
	}
	literal := name + "{" + strings.Join(members, ", ") + "}"
	return wrapOptional(literal, info.Required), nil
}

// typeExprOf computes a field's Go type expression without emitting anything,
// mirroring the naming decisions the emission walk makes.
func (e *emitter) typeExprOf(f model.Field, ctx fieldContext) (string, error) {
	info := f.Info
	if info.Subschema {
		info.Name = model.RefToSubschema(info.Name).TypeName(e.rootName)
	}

	switch t := f.Type.(type) {
	case model.NullType:
		return maybeOptional("wire.Null", info.Required), nil
	case model.BooleanType:
		return maybeOptional("bool", info.Required), nil
	case model.IntegerType:
		return maybeOptional("int64", info.Required), nil
	case model.NumberType:
		return maybeOptional("float64", info.Required), nil
	case model.StringType:
		return maybeOptional("string", info.Required), nil
	case model.ArrayType:
		inner := fieldContext{prefix: ctx.prefix + "Items"}
		item, err := e.typeExprOf(t.Items, inner)
		if err != nil {
			return "", err
		}
		return maybeOptional("[]"+item, info.Required), nil
	case model.ObjectType, model.EnumType, model.TupleType:
		name, err := e.typeName(info, ctx)
		if err != nil {
			return "", err
		}
		return maybeOptional(name, info.Required), nil
	case model.RefType:
		return "*" + t.Target.TypeName(e.rootName), nil
	}
	return "", mismatchf(info.Name, "unhandled field kind %q", f.Type.Kind())
}

// wrapOptional lifts a construction expression into the pointer an optional
// field carries.
func wrapOptional(expr string, required bool) string {
	if required {
		return expr
	}
	return "wire.Ptr(" + expr + ")"
}
