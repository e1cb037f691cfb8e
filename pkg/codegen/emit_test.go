package codegen_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-structgen/pkg/codegen"
	"github.com/goliatone/go-structgen/pkg/model"
	"github.com/goliatone/go-structgen/pkg/schema"
	"github.com/goliatone/go-structgen/pkg/testsupport"
)

func buildModel(t *testing.T, schemaText string, opts model.BuildOptions) *model.SchemaModel {
	t.Helper()

	value, err := schema.ParseValue([]byte(schemaText))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	root, ok := value.(*schema.Object)
	if !ok {
		t.Fatalf("schema did not parse to an object, got %T", value)
	}
	m, err := model.Build(root, []byte(schemaText), opts)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return m
}

func emit(t *testing.T, schemaText string, buildOpts model.BuildOptions, opts codegen.Options) string {
	t.Helper()

	out, err := codegen.Emit(buildModel(t, schemaText, buildOpts), opts)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return string(out.Source)
}

var spaceRuns = regexp.MustCompile(`[ \t]+`)

// mustContain matches against whitespace-normalized source, so gofmt's
// struct field alignment does not matter to the assertions.
func mustContain(t *testing.T, source string, wants ...string) {
	t.Helper()
	normalized := spaceRuns.ReplaceAllString(source, " ")
	for _, want := range wants {
		if !strings.Contains(normalized, spaceRuns.ReplaceAllString(want, " ")) {
			t.Fatalf("generated source missing %q\n\n%s", want, source)
		}
	}
}

const productSchema = `{
	"title": "Product",
	"description": "A product from the catalog.",
	"type": "object",
	"properties": {
		"id": {"type": "integer"},
		"name": {"type": "string"},
		"price": {"type": "number", "default": 9.99},
		"tags": {
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"required": ["id", "price", "tags"]
}`

func TestEmitProduct(t *testing.T) {
	source := emit(t, productSchema, model.BuildOptions{}, codegen.Options{Package: "catalog"})

	mustContain(t, source,
		"package catalog",
		"// A product from the catalog.",
		"type Product struct {",
		"Id int64 `json:\"id\"`",
		"Name *string `json:\"name\"`",
		"Price float64 `json:\"price\"`",
		"Tags []string `json:\"tags\"`",
		"func defaultProductPrice() float64 {",
		"return float64(9.99)",
		"func (v *Product) UnmarshalJSON(data []byte) error {",
		"func ProductFromJSON(data []byte) (Product, error) {",
		"func (v Product) ToJSON() ([]byte, error) {",
	)

	// Required fields without defaults error when absent, optional ones
	// reset to nil.
	mustContain(t, source,
		`return wire.MissingField("id")`,
		"v.Name = nil",
		"v.Price = defaultProductPrice()",
	)
}

func TestEmitNestedObjectPrefixes(t *testing.T) {
	source := emit(t, `{
		"title": "Config",
		"type": "object",
		"properties": {
			"server": {
				"type": "object",
				"properties": {
					"host": {"type": "string"},
					"tls": {
						"type": "object",
						"properties": {"cert": {"type": "string"}}
					}
				},
				"required": ["host"]
			}
		},
		"required": ["server"]
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source,
		"package types",
		"type Config struct {",
		"type ConfigServer struct {",
		"type ConfigServerTls struct {",
		"Server ConfigServer `json:\"server\"`",
		"Tls *ConfigServerTls `json:\"tls\"`",
	)
}

func TestEmitEnum(t *testing.T) {
	source := emit(t, `{
		"title": "Shirt",
		"type": "object",
		"properties": {
			"color": {"enum": ["red", "light-blue"], "default": "red"}
		},
		"required": ["color"]
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source,
		"type ShirtColor int",
		"ShirtColorRed ShirtColor = iota",
		"ShirtColorLightBlue",
		`case "light-blue":`,
		"func defaultShirtColor() ShirtColor {",
		"return ShirtColorRed",
		`return wire.UnknownVariant("ShirtColor", s)`,
	)
}

func TestEmitTuple(t *testing.T) {
	source := emit(t, `{
		"title": "Place",
		"type": "object",
		"properties": {
			"coords": {
				"type": "array",
				"prefixItems": [{"type": "number"}, {"type": "number"}]
			}
		},
		"required": ["coords"]
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source,
		"type PlaceCoords struct {",
		"Coords0 float64",
		"Coords1 float64",
		`return wire.WrongArity("PlaceCoords", 2, len(raw))`,
		"items := [2]any{",
	)
}

func TestEmitSubschemasAndRefs(t *testing.T) {
	source := emit(t, `{
		"title": "Tree",
		"type": "object",
		"properties": {
			"value": {"type": "integer"},
			"left": {"$ref": "#"},
			"label": {"$ref": "#/$defs/label"}
		},
		"required": ["value"],
		"$defs": {
			"label": {"type": "string"},
			"meta": {
				"type": "object",
				"properties": {"note": {"type": "string"}}
			}
		}
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source,
		"type TreeDefLabel = string",
		"type TreeDefMeta struct {",
		"Left *Tree `json:\"left\"`",
		"Label *TreeDefLabel `json:\"label\"`",
	)
}

func TestEmitRequiredNullMember(t *testing.T) {
	source := emit(t, `{
		"title": "Marker",
		"type": "object",
		"properties": {
			"n": {"type": "null"}
		},
		"required": ["n"]
	}`, model.BuildOptions{}, codegen.Options{})

	// The only legal wire value for the member is null, so the decoder must
	// accept it as present instead of routing it to the absent branch.
	mustContain(t, source,
		"N wire.Null `json:\"n\"`",
		`if member, ok := raw["n"]; ok {`,
		`return wire.MissingField("n")`,
	)
	if strings.Contains(source, `raw["n"]; ok && string(member) != "null"`) {
		t.Fatalf("null-typed member must not treat null as absent:\n%s", source)
	}
}

func TestEmitArrayDefaultChain(t *testing.T) {
	source := emit(t, `{
		"title": "Meter",
		"type": "object",
		"properties": {
			"nums": {
				"type": "array",
				"items": {"type": "integer", "default": 0},
				"default": [7, 8, 9]
			}
		},
		"required": ["nums"]
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source,
		"Nums []int64 `json:\"nums\"`",
		"func defaultMeterNums() []int64 {",
		"return []int64{int64(7), int64(8), int64(9)}",
		"v.Nums = defaultMeterNums()",
		"func defaultMeterItemsNums() int64 {",
		"return int64(0)",
	)
}

func TestEmitOptionalArrayDefaultWrapsElements(t *testing.T) {
	source := emit(t, `{
		"title": "Meter",
		"type": "object",
		"properties": {
			"nums": {
				"type": "array",
				"items": {"type": "integer"},
				"default": [7]
			}
		}
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source,
		"func defaultMeterNums() *[]*int64 {",
		"return wire.Ptr([]*int64{wire.Ptr(int64(7))})",
	)
}

func TestEmitOptionalArrayElementsFollowField(t *testing.T) {
	source := emit(t, `{
		"title": "Bag",
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {"type": "integer"}
			}
		}
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source, "Items *[]*int64 `json:\"items\"`")
}

func TestEmitObjectDefaultFallbackChain(t *testing.T) {
	source := emit(t, `{
		"title": "Widget",
		"type": "object",
		"properties": {
			"spec": {
				"type": "object",
				"properties": {
					"height": {"type": "integer"},
					"width": {"type": "integer", "default": 10},
					"depth": {"type": "integer"}
				},
				"required": ["height", "width"],
				"default": {"height": 5}
			}
		},
		"required": ["spec"]
	}`, model.BuildOptions{}, codegen.Options{})

	mustContain(t, source,
		"func defaultWidgetSpec() WidgetSpec {",
		"WidgetSpec{Height: int64(5), Width: int64(10), Depth: nil}",
	)
}

func TestEmitObjectDefaultMissingRequired(t *testing.T) {
	m := buildModel(t, `{
		"title": "Widget",
		"type": "object",
		"properties": {
			"spec": {
				"type": "object",
				"properties": {"height": {"type": "integer"}},
				"required": ["height"],
				"default": {}
			}
		}
	}`, model.BuildOptions{})

	_, err := codegen.Emit(m, codegen.Options{})
	var mismatch *codegen.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if !strings.Contains(mismatch.Message, "not nullable") {
		t.Fatalf("unexpected message %q", mismatch.Message)
	}
}

func TestEmitDefaultTypeMismatch(t *testing.T) {
	m := buildModel(t, `{
		"title": "Broken",
		"type": "object",
		"properties": {
			"count": {"type": "integer", "default": "three"}
		}
	}`, model.BuildOptions{})

	_, err := codegen.Emit(m, codegen.Options{})
	var mismatch *codegen.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Field != "count" {
		t.Fatalf("error anchored to %q, want %q", mismatch.Field, "count")
	}
}

func TestEmitTupleDefaultArityMismatch(t *testing.T) {
	m := buildModel(t, `{
		"title": "Place",
		"type": "object",
		"properties": {
			"coords": {
				"type": "array",
				"prefixItems": [{"type": "number"}, {"type": "number"}],
				"default": [1.0]
			}
		},
		"required": ["coords"]
	}`, model.BuildOptions{})

	_, err := codegen.Emit(m, codegen.Options{})
	var mismatch *codegen.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if !strings.Contains(mismatch.Message, "different lengths") {
		t.Fatalf("unexpected message %q", mismatch.Message)
	}
}

func TestEmitUnexported(t *testing.T) {
	source := emit(t, productSchema, model.BuildOptions{Unexported: true}, codegen.Options{})

	mustContain(t, source,
		"type product struct {",
		"func productFromJSON(data []byte) (product, error) {",
	)
	if strings.Contains(source, "type Product struct") {
		t.Fatalf("expected unexported root type:\n%s", source)
	}
}

func TestEmitDocsEmbedding(t *testing.T) {
	source := emit(t, productSchema, model.BuildOptions{EmitDocs: true}, codegen.Options{})

	mustContain(t, source,
		"// Full definition:",
		"//\ttype Product struct {",
	)
}

func TestEmitValidationConst(t *testing.T) {
	source := emit(t, productSchema, model.BuildOptions{CaptureSchema: true}, codegen.Options{})

	mustContain(t, source,
		"const productSchemaJSON = ",
		"wire.UnmarshalValidated(data, []byte(productSchemaJSON), &v)",
	)
}

func TestEmitFixtureSchema(t *testing.T) {
	raw := testsupport.LoadFixture(t, "testdata/inventory.json")
	source := emit(t, string(raw), model.BuildOptions{}, codegen.Options{Package: "inventory"})

	mustContain(t, source,
		"package inventory",
		"type Inventory struct {",
		"type InventoryDefLocation struct {",
		"Location *InventoryDefLocation `json:\"location\"`",
		`return wire.MissingField("sku")`,
	)
}

func TestEmitNameOverride(t *testing.T) {
	source := emit(t, `{
		"type": "object",
		"properties": {"ok": {"type": "boolean"}}
	}`, model.BuildOptions{Name: "status report"}, codegen.Options{})

	mustContain(t, source, "type StatusReport struct {")
}
