package sheet

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain lowercase", input: "nombre", want: "nombre"},
		{name: "capitalized", input: "Nombre", want: "nombre"},
		{name: "trailing space", input: "nombre ", want: "nombre"},
		{name: "leading and trailing space", input: "  nombre\t", want: "nombre"},
		{name: "accented", input: "Nómbre", want: "nombre"},
		{name: "accented category", input: "Categoría", want: "categoria"},
		{name: "enye decomposes", input: "Año", want: "ano"},
		{name: "internal whitespace run", input: "precio  unitario", want: "precio_unitario"},
		{name: "tab between words", input: "precio\tunitario", want: "precio_unitario"},
		{name: "non-breaking space", input: "precio\u00a0unitario", want: "precio_unitario"},
		{name: "punctuation removed", input: "Precio ($)", want: "precio_"},
		{name: "existing underscore kept", input: "image_url", want: "image_url"},
		{name: "digits kept", input: "Talla 2", want: "talla_2"},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "?!-", want: ""},
		{name: "non-latin letters dropped", input: "цена", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.input); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeHeader_Variants(t *testing.T) {
	variants := []string{"Nombre", "nombre ", "Nómbre", " NOMBRE", "nómbre"}
	for _, v := range variants {
		if got := NormalizeHeader(v); got != "nombre" {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", v, got, "nombre")
		}
	}
}

func TestNormalizeHeader_Idempotent(t *testing.T) {
	inputs := []string{"Descripción del Producto", "Precio ($)", "  Imagen  URL "}
	for _, in := range inputs {
		once := NormalizeHeader(in)
		if twice := NormalizeHeader(once); twice != once {
			t.Errorf("NormalizeHeader not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
