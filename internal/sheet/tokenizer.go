package sheet

import "strings"

const (
	quote     = '"'
	separator = ','
)

// SplitLine splits one CSV line into its fields.
//
// A field that starts with a double quote runs to the closing quote, with ""
// collapsing to a literal quote. Anything between the closing quote and the
// next comma is dropped. Unquoted fields run verbatim to the next comma.
// A trailing comma does not produce an extra empty field.
func SplitLine(line string) []string {
	fields, _ := splitLine(line)
	return fields
}

// splitLine is SplitLine that also reports how many quoted fields were
// malformed: never closed, or followed by stray characters before the
// next comma.
func splitLine(line string) (fields []string, malformed int) {
	fields = []string{}
	i := 0
	for i < len(line) {
		if line[i] != quote {
			j := strings.IndexByte(line[i:], separator)
			if j < 0 {
				fields = append(fields, line[i:])
				break
			}
			fields = append(fields, line[i:i+j])
			i += j + 1
			continue
		}

		var value strings.Builder
		closed := false
		i++
		for i < len(line) {
			if line[i] == quote {
				if i+1 < len(line) && line[i+1] == quote {
					value.WriteByte(quote)
					i += 2
					continue
				}
				i++
				closed = true
				break
			}
			value.WriteByte(line[i])
			i++
		}

		if !closed {
			malformed++
		} else if i < len(line) && line[i] != separator {
			malformed++
			if j := strings.IndexByte(line[i:], separator); j >= 0 {
				i += j
			} else {
				i = len(line)
			}
		}
		if i < len(line) {
			i++ // separator
		}
		fields = append(fields, value.String())
	}
	return fields, malformed
}
