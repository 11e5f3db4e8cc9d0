package sheet

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Row maps a canonical header name to the trimmed cell text of one data line.
type Row map[string]string

// Get returns the cell for key, or "" when the column is absent.
func (r Row) Get(key string) string {
	return r[key]
}

// Stats describes how much a parse had to tolerate.
type Stats struct {
	Header          []string // canonical header, in column order
	Rows            int      // data rows produced
	ShortRows       int      // rows with fewer cells than the header
	LongRows        int      // rows with more cells than the header
	MalformedFields int      // quoted fields never closed or with trailing junk
}

// Parse converts raw CSV text into rows keyed by canonical header.
// Empty input, or input holding only a header line, yields no rows.
func Parse(text string) []Row {
	rows, _ := ParseReport(text)
	return rows
}

// ParseReport is Parse plus the diagnostics gathered along the way.
func ParseReport(text string) ([]Row, Stats) {
	var stats Stats

	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return []Row{}, stats
	}

	headerCells, malformed := splitLine(lines[0])
	stats.MalformedFields += malformed
	stats.Header = NormalizeHeaders(headerCells)

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells, malformed := splitLine(line)
		stats.MalformedFields += malformed

		switch {
		case len(cells) < len(stats.Header):
			stats.ShortRows++
		case len(cells) > len(stats.Header):
			stats.LongRows++
		}

		rows = append(rows, buildRow(stats.Header, cells))
	}
	stats.Rows = len(rows)

	return rows, stats
}

// buildRow pairs header keys with cells by index. Missing cells become "",
// extra cells are ignored. When a key repeats, the rightmost column wins.
func buildRow(header, cells []string) Row {
	row := make(Row, len(header))
	for i, key := range header {
		value := ""
		if i < len(cells) {
			value = strings.TrimSpace(cells[i])
		}
		row[key] = value
	}
	return row
}

// nonBlankLines splits on LF or CRLF, dropping empty and whitespace-only lines.
func nonBlankLines(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, line := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
