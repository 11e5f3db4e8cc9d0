package sheet

import (
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "simple", line: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "quoted comma", line: `a,"b,c",d`, want: []string{"a", "b,c", "d"}},
		{name: "doubled quote", line: `a,"b""c",d`, want: []string{"a", `b"c`, "d"}},
		{name: "quoted last field", line: `a,"b"`, want: []string{"a", "b"}},
		{name: "empty quoted field", line: `a,"",c`, want: []string{"a", "", "c"}},
		{name: "empty middle field", line: "a,,c", want: []string{"a", "", "c"}},
		{name: "leading empty field", line: ",a", want: []string{"", "a"}},
		{name: "trailing comma", line: "a,b,", want: []string{"a", "b"}},
		{name: "spaces preserved", line: " a , b ", want: []string{" a ", " b "}},
		{name: "quote inside unquoted field", line: `a"b,c`, want: []string{`a"b`, "c"}},
		{name: "junk after closing quote ignored", line: `"ab"xy,c`, want: []string{"ab", "c"}},
		{name: "junk after closing quote at end", line: `a,"b"x`, want: []string{"a", "b"}},
		{name: "unclosed quote runs to end", line: `a,"b,c`, want: []string{"a", "b,c"}},
		{name: "price with thousands separator", line: `Pizza,"$12.990",Rica`, want: []string{"Pizza", "$12.990", "Rica"}},
		{name: "multibyte text", line: "Café,Niño", want: []string{"Café", "Niño"}},
		{name: "empty line", line: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitLine_MalformedCount(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{`a,"b",c`, 0},
		{`"a"x,"b"y`, 2},
		{`a,"b`, 1},
		{`"a""",b`, 0},
	}

	for _, tt := range tests {
		_, got := splitLine(tt.line)
		if got != tt.want {
			t.Errorf("splitLine(%q) malformed = %d, want %d", tt.line, got, tt.want)
		}
	}
}
