package sheet

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	text := "Nombre,Precio,Descripción\r\n" +
		"Pizza,\"$12.990\", Familiar \n" +
		"\n" +
		"   \n" +
		"Bebida,1500\n"

	got := Parse(text)
	want := []Row{
		{"nombre": "Pizza", "precio": "$12.990", "descripcion": "Familiar"},
		{"nombre": "Bebida", "precio": "1500", "descripcion": ""},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_EmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: " \n\t\r\n"},
		{name: "header only", text: "nombre,precio"},
		{name: "header and blank lines", text: "nombre,precio\n\n  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if got == nil {
				t.Fatal("Parse() returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("Parse() returned %d rows, want 0", len(got))
			}
		})
	}
}

func TestParse_HeaderVariantsLookup(t *testing.T) {
	headers := []string{"Nombre", "nombre ", "Nómbre"}
	for _, h := range headers {
		rows := Parse(h + ",precio\nPizza,100\n")
		if len(rows) != 1 {
			t.Fatalf("header %q: got %d rows, want 1", h, len(rows))
		}
		if got := rows[0].Get("nombre"); got != "Pizza" {
			t.Errorf("header %q: nombre = %q, want %q", h, got, "Pizza")
		}
	}
}

func TestParseReport_ShortAndLongRows(t *testing.T) {
	text := "a,b,c\n1\n1,2,3,4,5\n1,2,3\n"

	rows, stats := ParseReport(text)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0]["b"] != "" || rows[0]["c"] != "" {
		t.Errorf("short row should pad with empty strings, got %v", rows[0])
	}
	if len(rows[1]) != 3 {
		t.Errorf("long row should ignore extra cells, got %v", rows[1])
	}
	if stats.ShortRows != 1 {
		t.Errorf("ShortRows = %d, want 1", stats.ShortRows)
	}
	if stats.LongRows != 1 {
		t.Errorf("LongRows = %d, want 1", stats.LongRows)
	}
	if stats.Rows != 3 {
		t.Errorf("Rows = %d, want 3", stats.Rows)
	}
	if !reflect.DeepEqual(stats.Header, []string{"a", "b", "c"}) {
		t.Errorf("Header = %v, want [a b c]", stats.Header)
	}
}

func TestParseReport_MalformedFields(t *testing.T) {
	text := "nombre,precio\n\"Pizza\"x,100\n\"Bebida,200\n"

	rows, stats := ParseReport(text)

	if stats.MalformedFields != 2 {
		t.Errorf("MalformedFields = %d, want 2", stats.MalformedFields)
	}
	if rows[0]["nombre"] != "Pizza" || rows[0]["precio"] != "100" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["nombre"] != "Bebida,200" || rows[1]["precio"] != "" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestParse_DuplicateHeaderLastWins(t *testing.T) {
	rows := Parse("nombre,Nombre\nfirst,second\n")
	if got := rows[0]["nombre"]; got != "second" {
		t.Errorf("nombre = %q, want %q", got, "second")
	}
}

func TestParse_Deterministic(t *testing.T) {
	text := "Nombre,Precio\nPizza,100\nBebida,200\n"
	if a, b := Parse(text), Parse(text); !reflect.DeepEqual(a, b) {
		t.Errorf("Parse not deterministic: %v vs %v", a, b)
	}
}
