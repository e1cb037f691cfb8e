package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseValuePreservesKeyOrder(t *testing.T) {
	value, err := ParseValue([]byte(`{"zebra": 1, "apple": 2, "mango": 3}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	obj, ok := value.(*Object)
	if !ok {
		t.Fatalf("expected object, got %T", value)
	}

	want := []string{"zebra", "apple", "mango"}
	if diff := cmp.Diff(want, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValueScalars(t *testing.T) {
	value, err := ParseValue([]byte(`{
		"s": "text",
		"b": true,
		"i": 42,
		"f": 1.5,
		"n": null,
		"arr": [1, "two"]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	obj := value.(*Object)

	cases := []struct {
		key  string
		want any
	}{
		{"s", "text"},
		{"b", true},
		{"i", int64(42)},
		{"f", 1.5},
		{"n", nil},
	}
	for _, tc := range cases {
		got, ok := obj.Get(tc.key)
		if !ok {
			t.Fatalf("key %q missing", tc.key)
		}
		if got != tc.want {
			t.Fatalf("key %q = %#v (%T), want %#v", tc.key, got, got, tc.want)
		}
	}

	arr, _, err := obj.ArrayProp("arr")
	if err != nil {
		t.Fatalf("arr: %v", err)
	}
	if diff := cmp.Diff([]any{int64(1), "two"}, arr); diff != "" {
		t.Fatalf("arr mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValueYAML(t *testing.T) {
	value, err := ParseValue([]byte(strings.TrimSpace(`
title: Product
type: object
properties:
  id:
    type: integer
  name:
    type: string
`)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	obj := value.(*Object)

	title, _, err := obj.StringProp("title")
	if err != nil || title != "Product" {
		t.Fatalf("title = %q, err %v", title, err)
	}
	props, _, err := obj.ObjectProp("properties")
	if err != nil {
		t.Fatalf("properties: %v", err)
	}
	if diff := cmp.Diff([]string{"id", "name"}, props.Keys()); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValueEmpty(t *testing.T) {
	if _, err := ParseValue(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseDocumentRejectsNonObject(t *testing.T) {
	doc := MustNewDocument(SourceFromBytes([]byte(`[1, 2]`)), []byte(`[1, 2]`))
	if _, err := ParseDocument(doc); err == nil {
		t.Fatal("expected error for non-object document")
	}
}

func TestPropsWrongType(t *testing.T) {
	value, err := ParseValue([]byte(`{"title": 42}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	obj := value.(*Object)

	_, present, err := obj.StringProp("title")
	if !present {
		t.Fatal("expected title to be present")
	}
	if err == nil {
		t.Fatal("expected type error")
	}
	if !strings.Contains(err.Error(), "integer") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObjectSetOverwriteKeepsPosition(t *testing.T) {
	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("a", 3)

	if diff := cmp.Diff([]string{"a", "b"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	got, _ := obj.Get("a")
	if got != 3 {
		t.Fatalf("a = %v", got)
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{true, "boolean"},
		{int64(1), "integer"},
		{1.5, "number"},
		{"x", "string"},
		{[]any{}, "array"},
		{NewObject(), "object"},
	}
	for _, tc := range cases {
		if got := TypeOf(tc.value); got != tc.want {
			t.Fatalf("TypeOf(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
