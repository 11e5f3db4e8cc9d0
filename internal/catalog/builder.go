package catalog

// builder.go maps raw sheet rows onto catalog entries.
//
// Each logical field is resolved from an ordered list of canonical header
// aliases: the first alias with a non-empty value wins. A row without a name
// under any alias is dropped; that is the only validation applied. Every
// other field degrades to a default.

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/sheetcart/internal/sheet"
)

// Header aliases per logical field, in priority order.
var (
	NameAliases        = []string{"nombre", "name", "producto", "titulo"}
	PriceAliases       = []string{"precio", "price", "valor"}
	DescriptionAliases = []string{"descripcion", "description"}
	ImageAliases       = []string{"imagen", "image"}
	CategoryAliases    = []string{"categoria", "category"}
)

// BuildStats counts what Build had to discard or default.
type BuildStats struct {
	Rows           int // rows received
	Entries        int // entries produced
	Dropped        int // rows without a usable name
	PriceDefaulted int // entries whose price fell back to 0
}

// Build converts rows to entries, preserving row order.
func Build(rows []sheet.Row) []Entry {
	entries, _ := BuildReport(rows)
	return entries
}

// BuildReport is Build plus counts of dropped rows and defaulted prices.
func BuildReport(rows []sheet.Row) ([]Entry, BuildStats) {
	stats := BuildStats{Rows: len(rows)}
	entries := make([]Entry, 0, len(rows))

	for _, row := range rows {
		name := firstValue(row, NameAliases)
		if name == "" {
			stats.Dropped++
			continue
		}

		price, ok := ParsePrice(firstValue(row, PriceAliases))
		if !ok {
			stats.PriceDefaulted++
		}

		entries = append(entries, Entry{
			Name:        name,
			Price:       price,
			Description: firstValue(row, DescriptionAliases),
			Image:       valueOr(firstValue(row, ImageAliases), PlaceholderImage),
			Category:    valueOr(firstValue(row, CategoryAliases), Uncategorized),
		})
	}
	stats.Entries = len(entries)

	return entries, stats
}

// ParsePrice keeps only the ASCII digits of s and parses them as a whole
// number, so "$12.990" is 12990. It returns 0 and false when no digits
// remain or the number does not fit in an int64.
func ParsePrice(s string) (int64, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstValue(row sheet.Row, aliases []string) string {
	for _, key := range aliases {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return ""
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
