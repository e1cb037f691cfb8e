package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// renderer wraps a pongo2 template set loaded from the embedded bundle.
// Templates are parsed on first use and cached for the rest of the run.
type renderer struct {
	mu    sync.Mutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

func newRenderer() *renderer {
	set := pongo2.NewSet("structgen", pongo2.NewFSLoader(embeddedTemplates))
	set.Options.TrimBlocks = true
	return &renderer{
		set:   set,
		cache: make(map[string]*pongo2.Template),
	}
}

func (r *renderer) render(name string, data pongo2.Context) (string, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return "", fmt.Errorf("codegen: execute template %q: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (r *renderer) template(name string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile("templates/" + name + ".tpl")
	if err != nil {
		return nil, fmt.Errorf("codegen: load template %q: %w", name, err)
	}
	r.cache[name] = tmpl
	return tmpl, nil
}
