// Package cart holds the user's in-progress order: an ordered list of
// distinct items with quantities and a total that is always derived from
// the lines.
package cart

// Line is one distinct item in the cart. Price is the unit price captured
// when the item was first added.
type Line struct {
	Item     string `json:"item"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Subtotal is Price * Quantity.
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// State is a copy of the cart at one point in time.
type State struct {
	Lines []Line `json:"lines"`
	Total int64  `json:"total"`
}

// ItemCount is the number of units across all lines.
func (s State) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (s State) Empty() bool {
	return len(s.Lines) == 0
}

// SummaryLine is one line of an order summary.
type SummaryLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// OrderSummary is what gets handed to whoever formats the outgoing order
// message.
type OrderSummary struct {
	Lines []SummaryLine `json:"lines"`
	Total int64         `json:"total"`
}

// Summary returns one line per cart entry plus the grand total.
func (s State) Summary() OrderSummary {
	lines := make([]SummaryLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = SummaryLine{Item: l.Item, Quantity: l.Quantity, Subtotal: l.Subtotal()}
	}
	return OrderSummary{Lines: lines, Total: s.Total}
}

func sumLines(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
