package naming

import "testing"

func TestTypeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"product", "Product"},
		{"product info", "ProductInfo"},
		{"light-blue", "LightBlue"},
		{"snake_case_name", "SnakeCaseName"},
		{"camelCase", "CamelCase"},
		{"HTTPServer", "HttpServer"},
		{"9lives", "Lives"},
		{"42", ""},
		{"name42x", "Name42X"},
		{"weird!!chars", "WeirdChars"},
		{"", ""},
		{"a", "A"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := TypeName(tc.in); got != tc.want {
				t.Fatalf("TypeName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFieldNameKeepsWireName(t *testing.T) {
	ident, wire := FieldName("first_name")
	if ident != "FirstName" {
		t.Fatalf("ident = %q", ident)
	}
	if wire != "first_name" {
		t.Fatalf("wire = %q", wire)
	}
}

func TestVariantName(t *testing.T) {
	cases := []struct {
		in           string
		want         string
		wantOriginal string
	}{
		{"Red", "Red", ""},
		{"light-blue", "LightBlue", "light-blue"},
		{"4x4", "X4", "4x4"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, original := VariantName(tc.in)
			if got != tc.want || original != tc.wantOriginal {
				t.Fatalf("VariantName(%q) = (%q, %q), want (%q, %q)",
					tc.in, got, original, tc.want, tc.wantOriginal)
			}
		})
	}
}

func TestDefaultFuncName(t *testing.T) {
	if got := DefaultFuncName("ProductOwner", "first_name"); got != "defaultProductOwnerFirstName" {
		t.Fatalf("got %q", got)
	}
}

func TestUnexportEscapesReserved(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Product", "product"},
		{"Type", "type_"},
		{"String", "string_"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Unexport(tc.in); got != tc.want {
			t.Fatalf("Unexport(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeReserved(t *testing.T) {
	if got := EscapeReserved("struct"); got != "struct_" {
		t.Fatalf("got %q", got)
	}
	if got := EscapeReserved("Struct"); got != "Struct" {
		t.Fatalf("got %q", got)
	}
}
