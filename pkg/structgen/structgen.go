// Package structgen ties the pipeline together: load a schema document,
// build the typed model, and emit Go type definitions for it.
package structgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-structgen/internal/schemaloader"
	"github.com/goliatone/go-structgen/pkg/codegen"
	"github.com/goliatone/go-structgen/pkg/model"
	"github.com/goliatone/go-structgen/pkg/schema"
)

// Option configures a Generator before first use.
type Option func(*Generator)

// WithLoader replaces the default source loader.
func WithLoader(loader schema.Loader) Option {
	return func(g *Generator) {
		if loader != nil {
			g.loader = loader
		}
	}
}

// WithLoaderOptions rebuilds the default loader with custom transport
// settings.
func WithLoaderOptions(options schema.LoaderOptions) Option {
	return func(g *Generator) {
		g.loader = schemaloader.New(options)
	}
}

// WithLogger attaches a diagnostic sink. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// Generator runs schema-to-struct compilations. It is safe for concurrent
// use once constructed.
type Generator struct {
	loader schema.Loader
	logger zerolog.Logger
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{
		loader: schemaloader.New(schema.LoaderOptions{AllowHTTPFallback: true}),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Request describes one generation run.
type Request struct {
	// Source locates the schema document.
	Source schema.Source
	// TypeName overrides the schema title as the top-level type identifier.
	TypeName string
	// Package is the package clause of the generated file. Defaults to
	// "types".
	Package string
	// Unexported lowers the visibility of every generated identifier.
	Unexported bool
	// EmitDocs embeds a simplified definition listing in the top-level doc
	// comment.
	EmitDocs bool
	// ValidateOnDecode embeds the schema text and revalidates every payload
	// before decoding.
	ValidateOnDecode bool
	// Debug dumps the emitted definition set to the logger.
	Debug bool
}

// Result is the outcome of one generation run.
type Result struct {
	// Source is the complete gofmt-formatted Go file.
	Source []byte
	// TypeName is the emitted top-level type identifier.
	TypeName string
	// Model is the intermediate representation the file was emitted from.
	Model *model.SchemaModel
}

// Generate compiles the schema behind req.Source into Go type definitions.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Source == nil {
		return nil, errors.New("structgen: request source is required")
	}

	doc, err := g.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("structgen: load schema: %w", err)
	}
	g.logger.Debug().Str("location", doc.Location()).Msg("schema loaded")

	root, err := schema.ParseDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("structgen: parse schema: %w", err)
	}

	m, err := model.Build(root, doc.Raw(), model.BuildOptions{
		Name:          req.TypeName,
		Unexported:    req.Unexported,
		EmitDocs:      req.EmitDocs,
		CaptureSchema: req.ValidateOnDecode,
		Debug:         req.Debug,
	})
	if err != nil {
		return nil, err
	}
	g.logger.Debug().
		Str("type", m.Name).
		Int("subschemas", len(m.Subschemas)).
		Msg("model built")

	out, err := codegen.Emit(m, codegen.Options{
		Package: req.Package,
		Source:  doc.Location(),
		Logger:  &g.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Source:   out.Source,
		TypeName: out.TypeName,
		Model:    m,
	}, nil
}
