// Package sheet parses the loosely-structured CSV text exported from a
// human-edited spreadsheet into rows keyed by canonical header names.
//
// The parser is tolerant by construction: malformed cells, short rows and
// long rows never abort a parse. They degrade to empty strings and are
// counted in [Stats] so callers can observe how dirty the feed was.
//
// The flow is:
//
//  1. [Parse] splits the text on LF or CRLF and drops blank lines
//  2. The first remaining line is tokenized with [SplitLine] and each cell
//     is passed through [NormalizeHeader]
//  3. Every following line is tokenized and paired positionally with the
//     header, values trimmed
//
// Multi-line quoted fields are not supported.
package sheet
