package wire_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-structgen/pkg/wire"
)

const gadgetSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "integer"},
		"name": {"type": "string"}
	},
	"required": ["id"]
}`

func TestUnmarshalValidatedAccepts(t *testing.T) {
	var v gadget
	err := wire.UnmarshalValidated([]byte(`{"id": 3, "name": "rotor"}`), []byte(gadgetSchema), &v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Id != 3 {
		t.Fatalf("v = %+v", v)
	}
}

func TestUnmarshalValidatedRejects(t *testing.T) {
	var v gadget
	err := wire.UnmarshalValidated([]byte(`{"id": "three"}`), []byte(gadgetSchema), &v)
	var validation *wire.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUnmarshalValidatedBadSchema(t *testing.T) {
	var v gadget
	if err := wire.UnmarshalValidated([]byte(`{}`), []byte(`{`), &v); err == nil {
		t.Fatal("expected error for malformed schema")
	}
}
