package sheet

// header.go maps raw spreadsheet column labels to canonical identifiers.
//
// Labels that differ only by accents, case or whitespace normalize to the
// same key, so "Nombre", "nombre " and "Nómbre" all become "nombre".

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)
	nonWordChar   = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// NormalizeHeader returns the canonical identifier for a raw column label.
// Empty or all-punctuation labels normalize to "".
func NormalizeHeader(raw string) string {
	s := stripDiacritics(raw)
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = nonWordChar.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// stripDiacritics decomposes s (NFD) and drops the combining marks.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeHeaders normalizes every cell of a header line.
func NormalizeHeaders(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = NormalizeHeader(c)
	}
	return out
}
