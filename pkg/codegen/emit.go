// Package codegen walks a schema model and emits the Go source for its type
// definitions: one declaration set per named type, each with a JSON codec
// that enforces required members and applies declared defaults.
package codegen

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-structgen/pkg/model"
	"github.com/goliatone/go-structgen/pkg/naming"
)

const wireImportPath = "github.com/goliatone/go-structgen/pkg/wire"

// Options configures a single emission.
type Options struct {
	// Package is the package clause of the generated file. Defaults to
	// "types".
	Package string
	// Source annotates the file header with where the schema came from.
	Source string
	// Logger receives the generated definitions when the model asks for a
	// debug dump.
	Logger *zerolog.Logger
}

// Output is the result of one emission.
type Output struct {
	// Source is the complete gofmt-formatted file.
	Source []byte
	// TypeName is the emitted top-level type identifier.
	TypeName string
	// Defs are the rendered declarations in emission order, before
	// formatting.
	Defs []string
}

// Emit renders the model into a single Go source file. Subschema definitions
// come first in declaration order, then the root type and its codec.
func Emit(m *model.SchemaModel, opts Options) (*Output, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "types"
	}

	rootName := naming.TypeName(m.Name)
	if rootName == "" {
		return nil, &IdentifierError{Name: m.Name}
	}
	if !m.Exported {
		rootName = naming.Unexport(rootName)
	}

	e := &emitter{
		tpl:      newRenderer(),
		model:    m,
		rootName: rootName,
	}

	var defs, docDefs []string
	for _, sub := range m.Subschemas {
		subDefs, subDocDefs, err := e.subschema(sub)
		if err != nil {
			return nil, err
		}
		defs = append(defs, subDefs...)
		docDefs = append(docDefs, subDocDefs...)
	}

	rootField, err := e.object(m.Root, m.RootInfo, fieldContext{root: true})
	if err != nil {
		return nil, err
	}
	docDefs = append(docDefs, rootField.docDefs...)

	// The struct declaration sits right before its codec, which is the last
	// definition the object walk produced.
	structIndex := len(rootField.defs) - 2
	if doc := e.rootDoc(docDefs); doc != "" {
		rootField.defs[structIndex] = doc + "\n" + rootField.defs[structIndex]
	}
	defs = append(defs, rootField.defs...)

	if len(m.ValidateSchema) > 0 {
		constDef := "// " + schemaConstName(rootName) + " is the schema this type was generated from,\n" +
			"// revalidated on every decode.\n" +
			"const " + schemaConstName(rootName) + " = " + strconv.Quote(string(m.ValidateSchema))
		defs = append(defs, constDef)
	}

	body := strings.Join(defs, "\n\n")
	file, err := e.tpl.render("file", pongo2.Context{
		"package":    pkg,
		"source":     opts.Source,
		"wireImport": wireImportPath,
		"body":       body,
	})
	if err != nil {
		return nil, err
	}

	formatted, err := format.Source([]byte(file + "\n"))
	if err != nil {
		return nil, fmt.Errorf("codegen: format generated source: %w", err)
	}

	if m.Debug && opts.Logger != nil {
		opts.Logger.Debug().
			Str("type", rootName).
			Int("definitions", len(defs)).
			Str("source", string(formatted)).
			Msg("emitted type definitions")
	}

	return &Output{
		Source:   formatted,
		TypeName: rootName,
		Defs:     defs,
	}, nil
}

// subschema emits one named definition. Shapes that introduce a definition of
// their own already carry the mangled name; everything else gets a type
// alias.
func (e *emitter) subschema(sub model.Subschema) ([]string, []string, error) {
	fd, err := e.field(sub.Field, fieldContext{})
	if err != nil {
		return nil, nil, err
	}
	if introducesDef(sub.Field.Type) {
		return fd.defs, fd.docDefs, nil
	}

	mangled := model.RefToSubschema(sub.Name).TypeName(e.rootName)
	alias, err := e.tpl.render("alias", pongo2.Context{
		"name": mangled,
		"doc":  fd.doc,
		"type": fd.typeExpr,
	})
	if err != nil {
		return nil, nil, err
	}
	defs := append(fd.defs, alias)

	docAlias, err := e.tpl.render("alias", pongo2.Context{
		"name": mangled,
		"type": fd.typeExpr,
	})
	if err != nil {
		return nil, nil, err
	}
	docDefs := append(fd.docDefs, docAlias)
	return defs, docDefs, nil
}

// introducesDef reports whether emission gives the field a named declaration
// of its own. Tuples do here even though the model does not count them, since
// they come out as positional structs.
func introducesDef(t model.FieldType) bool {
	if model.CreatesDefs(t) {
		return true
	}
	_, ok := t.(model.TupleType)
	return ok
}

// rootDoc assembles the doc comment for the top-level type: the schema
// description, plus the simplified definition listing when doc embedding is
// on.
func (e *emitter) rootDoc(docDefs []string) string {
	doc := docComment(e.model.Description)
	if !e.model.EmitDocs {
		return doc
	}

	var b strings.Builder
	if doc != "" {
		b.WriteString(doc)
		b.WriteString("\n//\n")
	}
	b.WriteString("// Full definition:\n//\n")
	for i, def := range docDefs {
		if i > 0 {
			b.WriteString("//\n")
		}
		for _, line := range strings.Split(def, "\n") {
			if line == "" {
				b.WriteString("//\n")
				continue
			}
			b.WriteString("//\t")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
