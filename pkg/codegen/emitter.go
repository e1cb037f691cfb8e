package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-structgen/pkg/model"
	"github.com/goliatone/go-structgen/pkg/naming"
)

// fieldContext threads the naming state of one walk position. The prefix is
// the concatenation of the emitted names of the enclosing types, so every
// nested definition gets a unique deterministic identifier without a symbol
// table.
type fieldContext struct {
	prefix string
	// root is set only while emitting the top-level object itself.
	root bool
}

// fieldDef is the emission result for one field: the declarations it
// introduced plus everything the enclosing type needs to reference it.
type fieldDef struct {
	ident     string
	wireName  string
	typeExpr  string
	defaultFn string
	doc       string
	defs      []string
	docDefs   []string
}

type emitter struct {
	tpl      *renderer
	model    *model.SchemaModel
	rootName string
}

// field dispatches on the type variant. Subschema-backed fields are renamed
// to their mangled definition name before anything downstream sees them.
func (e *emitter) field(f model.Field, ctx fieldContext) (fieldDef, error) {
	info := f.Info
	if info.Subschema {
		info.Name = model.RefToSubschema(info.Name).TypeName(e.rootName)
	}

	switch t := f.Type.(type) {
	case model.NullType:
		return e.primitive("wire.Null", f.Type, info, ctx)
	case model.BooleanType:
		return e.primitive("bool", f.Type, info, ctx)
	case model.IntegerType:
		return e.primitive("int64", f.Type, info, ctx)
	case model.NumberType:
		return e.primitive("float64", f.Type, info, ctx)
	case model.StringType:
		return e.primitive("string", f.Type, info, ctx)
	case model.ArrayType:
		return e.array(t, info, ctx)
	case model.ObjectType:
		return e.object(t, info, ctx)
	case model.EnumType:
		return e.enum(t, info, ctx)
	case model.TupleType:
		return e.tuple(t, info, ctx)
	case model.RefType:
		return e.ref(t, info)
	}
	return fieldDef{}, fmt.Errorf("codegen: unhandled field kind %q", f.Type.Kind())
}

func (e *emitter) primitive(goType string, t model.FieldType, info model.FieldInfo, ctx fieldContext) (fieldDef, error) {
	ident, wireName, err := fieldIdent(info)
	if err != nil {
		return fieldDef{}, err
	}
	fd := fieldDef{
		ident:    ident,
		wireName: wireName,
		typeExpr: maybeOptional(goType, info.Required),
		doc:      docComment(info.Description),
	}
	if err := e.attachDefault(&fd, t, info, ctx); err != nil {
		return fieldDef{}, err
	}
	return fd, nil
}

func (e *emitter) array(t model.ArrayType, info model.FieldInfo, ctx fieldContext) (fieldDef, error) {
	ident, wireName, err := fieldIdent(info)
	if err != nil {
		return fieldDef{}, err
	}

	inner := fieldContext{prefix: ctx.prefix + "Items"}
	item, err := e.field(t.Items, inner)
	if err != nil {
		return fieldDef{}, err
	}

	fd := fieldDef{
		ident:    ident,
		wireName: wireName,
		typeExpr: maybeOptional("[]"+item.typeExpr, info.Required),
		doc:      docComment(info.Description),
		defs:     item.defs,
		docDefs:  item.docDefs,
	}
	if err := e.attachDefault(&fd, t, info, ctx); err != nil {
		return fieldDef{}, err
	}
	return fd, nil
}

func (e *emitter) object(t model.ObjectType, info model.FieldInfo, ctx fieldContext) (fieldDef, error) {
	ident, wireName, err := fieldIdent(info)
	if err != nil {
		return fieldDef{}, err
	}
	structName, err := e.typeName(info, ctx)
	if err != nil {
		return fieldDef{}, err
	}

	inner := fieldContext{prefix: structName}
	var defs, docDefs []string
	rows := make([]pongo2.Context, 0, len(t.Fields))
	docRows := make([]pongo2.Context, 0, len(t.Fields))
	for _, f := range t.Fields {
		child, err := e.field(f, inner)
		if err != nil {
			return fieldDef{}, err
		}
		defs = append(defs, child.defs...)
		docDefs = append(docDefs, child.docDefs...)
		// A null-typed member's only legal wire value is the null literal,
		// so the decoder must treat it as present rather than absent.
		_, nullIsValue := f.Type.(model.NullType)
		rows = append(rows, pongo2.Context{
			"ident":       child.ident,
			"type":        child.typeExpr,
			"tag":         child.wireName,
			"tagLit":      strconv.Quote(child.wireName),
			"doc":         child.doc,
			"defaultFn":   child.defaultFn,
			"required":    f.Info.Required,
			"nullIsValue": nullIsValue,
		})
		docRows = append(docRows, pongo2.Context{
			"ident": child.ident,
			"type":  child.typeExpr,
		})
	}

	fd := fieldDef{
		ident:    ident,
		wireName: wireName,
		typeExpr: maybeOptional(structName, info.Required),
		doc:      docComment(info.Description),
		defs:     defs,
		docDefs:  docDefs,
	}
	if err := e.attachDefault(&fd, t, info, ctx); err != nil {
		return fieldDef{}, err
	}

	structDoc := fd.doc
	if ctx.root {
		// The assembly attaches the root doc block after the whole
		// definition set is known.
		structDoc = ""
	}
	decl, err := e.tpl.render("struct", pongo2.Context{
		"name":   structName,
		"doc":    structDoc,
		"fields": rows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	fd.defs = append(fd.defs, decl)

	codecData := pongo2.Context{
		"name":    structName,
		"nameLit": strconv.Quote(structName),
		"fields":  rows,
	}
	if ctx.root && len(e.model.ValidateSchema) > 0 {
		codecData["schemaConst"] = schemaConstName(e.rootName)
	}
	codec, err := e.tpl.render("struct_codec", codecData)
	if err != nil {
		return fieldDef{}, err
	}
	fd.defs = append(fd.defs, codec)

	docDecl, err := e.tpl.render("struct_doc", pongo2.Context{
		"name":   structName,
		"fields": docRows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	fd.docDefs = append(fd.docDefs, docDecl)
	return fd, nil
}

func (e *emitter) enum(t model.EnumType, info model.FieldInfo, ctx fieldContext) (fieldDef, error) {
	ident, wireName, err := fieldIdent(info)
	if err != nil {
		return fieldDef{}, err
	}
	name, err := e.typeName(info, ctx)
	if err != nil {
		return fieldDef{}, err
	}

	rows := make([]pongo2.Context, 0, len(t.Variants))
	for _, variant := range t.Variants {
		sanitized, _ := naming.VariantName(variant)
		if sanitized == "" {
			return fieldDef{}, &IdentifierError{Name: variant}
		}
		rows = append(rows, pongo2.Context{
			"ident":   name + sanitized,
			"wireLit": strconv.Quote(variant),
		})
	}

	fd := fieldDef{
		ident:    ident,
		wireName: wireName,
		typeExpr: maybeOptional(name, info.Required),
		doc:      docComment(info.Description),
	}
	if err := e.attachDefault(&fd, t, info, ctx); err != nil {
		return fieldDef{}, err
	}

	decl, err := e.tpl.render("enum", pongo2.Context{
		"name":     name,
		"doc":      fd.doc,
		"variants": rows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	codec, err := e.tpl.render("enum_codec", pongo2.Context{
		"name":     name,
		"nameLit":  strconv.Quote(name),
		"variants": rows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	fd.defs = append(fd.defs, decl, codec)

	docDecl, err := e.tpl.render("enum_doc", pongo2.Context{
		"name":     name,
		"variants": rows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	fd.docDefs = append(fd.docDefs, docDecl)
	return fd, nil
}

// tuple emits a fixed-arity positional struct with an array codec. Items
// reuse the enclosing prefix, so their synthetic names stay unique without
// extending it.
func (e *emitter) tuple(t model.TupleType, info model.FieldInfo, ctx fieldContext) (fieldDef, error) {
	ident, wireName, err := fieldIdent(info)
	if err != nil {
		return fieldDef{}, err
	}
	name, err := e.typeName(info, ctx)
	if err != nil {
		return fieldDef{}, err
	}

	inner := fieldContext{prefix: ctx.prefix}
	var defs, docDefs []string
	rows := make([]pongo2.Context, 0, len(t.Items))
	for index, item := range t.Items {
		child, err := e.field(item, inner)
		if err != nil {
			return fieldDef{}, err
		}
		defs = append(defs, child.defs...)
		docDefs = append(docDefs, child.docDefs...)
		rows = append(rows, pongo2.Context{
			"ident":    child.ident,
			"type":     child.typeExpr,
			"doc":      child.doc,
			"index":    index,
			"indexLit": strconv.Quote(strconv.Itoa(index)),
		})
	}

	fd := fieldDef{
		ident:    ident,
		wireName: wireName,
		typeExpr: maybeOptional(name, info.Required),
		doc:      docComment(info.Description),
		defs:     defs,
		docDefs:  docDefs,
	}
	if err := e.attachDefault(&fd, t, info, ctx); err != nil {
		return fieldDef{}, err
	}

	decl, err := e.tpl.render("tuple", pongo2.Context{
		"name":  name,
		"doc":   fd.doc,
		"items": rows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	codec, err := e.tpl.render("tuple_codec", pongo2.Context{
		"name":    name,
		"nameLit": strconv.Quote(name),
		"arity":   len(t.Items),
		"items":   rows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	fd.defs = append(fd.defs, decl, codec)

	docDecl, err := e.tpl.render("tuple_doc", pongo2.Context{
		"name":  name,
		"items": rows,
	})
	if err != nil {
		return fieldDef{}, err
	}
	fd.docDefs = append(fd.docDefs, docDecl)
	return fd, nil
}

// ref resolves to a pointer to the target's mangled type name. The pointer
// breaks definition cycles and doubles as the optionality marker, so the type
// is never wrapped again.
func (e *emitter) ref(t model.RefType, info model.FieldInfo) (fieldDef, error) {
	ident, wireName, err := fieldIdent(info)
	if err != nil {
		return fieldDef{}, err
	}
	return fieldDef{
		ident:    ident,
		wireName: wireName,
		typeExpr: "*" + t.Target.TypeName(e.rootName),
		doc:      docComment(info.Description),
	}, nil
}

// attachDefault synthesizes the declared default, if any, into a nullary
// producer function returning the field's type.
func (e *emitter) attachDefault(fd *fieldDef, t model.FieldType, info model.FieldInfo, ctx fieldContext) error {
	def := t.Default()
	if !def.Set {
		return nil
	}
	expr, err := e.synthesize(t, def.Value, info, ctx)
	if err != nil {
		return err
	}
	if expr == "" {
		return nil
	}

	name := naming.DefaultFuncName(ctx.prefix, info.Name)
	rendered, err := e.tpl.render("defaultfn", pongo2.Context{
		"name":    name,
		"returns": fd.typeExpr,
		"value":   expr,
	})
	if err != nil {
		return err
	}
	fd.defs = append(fd.defs, rendered)
	fd.defaultFn = name
	return nil
}

// typeName derives the emitted name for a definition-introducing field.
func (e *emitter) typeName(info model.FieldInfo, ctx fieldContext) (string, error) {
	if ctx.root {
		return e.rootName, nil
	}
	if info.Subschema && ctx.prefix == "" {
		// Already mangled by the field dispatch.
		return info.Name, nil
	}
	base := naming.TypeName(info.Name)
	if base == "" {
		return "", &IdentifierError{Name: info.Name}
	}
	return ctx.prefix + base, nil
}

func fieldIdent(info model.FieldInfo) (string, string, error) {
	ident, wireName := naming.FieldName(info.Name)
	if ident == "" {
		return "", "", &IdentifierError{Name: info.Name}
	}
	return ident, wireName, nil
}

func maybeOptional(expr string, required bool) string {
	if required {
		return expr
	}
	return "*" + expr
}

func schemaConstName(rootName string) string {
	return naming.Unexport(rootName) + "SchemaJSON"
}

// docComment renders a description as Go comment lines, one per input line.
func docComment(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("// "+line, " \t")
	}
	return strings.Join(lines, "\n")
}
