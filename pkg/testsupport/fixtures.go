// Package testsupport holds helpers shared by the package test suites.
package testsupport

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goliatone/go-structgen/pkg/model"
	"github.com/goliatone/go-structgen/pkg/schema"
)

// ParseSchema parses raw schema text into the ordered object form. Testing
// helpers fail fatally to keep contract tests concise.
func ParseSchema(t *testing.T, raw string) *schema.Object {
	t.Helper()

	obj, err := ParseSchemaText(raw)
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return obj
}

// ParseSchemaText returns the ordered object without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func ParseSchemaText(raw string) (*schema.Object, error) {
	value, err := schema.ParseValue([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse schema: %w", err)
	}
	obj, ok := value.(*schema.Object)
	if !ok {
		return nil, errors.New("testsupport: schema root is not an object")
	}
	return obj, nil
}

// MustBuildModel parses raw schema text and builds its model.
func MustBuildModel(t *testing.T, raw string, opts model.BuildOptions) *model.SchemaModel {
	t.Helper()

	m, err := model.Build(ParseSchema(t, raw), []byte(raw), opts)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return m
}

// LoadFixture reads a file under the calling package's testdata directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return data
}
