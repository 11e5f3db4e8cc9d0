package cart

// snapshot.go encodes the cart for the durable store.
//
// The layout is two keys written together: the line sequence as a JSON
// array, and the derived total as a decimal string. The line field names
// (item, precio, cantidad) match what the browser version of the shop kept
// in localStorage, so existing snapshots load unchanged.

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default storage keys.
const (
	DefaultCartKey  = "carrito"
	DefaultTotalKey = "total"
)

var errMalformedSnapshot = errors.New("malformed cart snapshot")

// Keys names the two entries of a persisted snapshot.
type Keys struct {
	Cart  string
	Total string
}

func (k Keys) withDefaults() Keys {
	if k.Cart == "" {
		k.Cart = DefaultCartKey
	}
	if k.Total == "" {
		k.Total = DefaultTotalKey
	}
	return k
}

type snapshotLine struct {
	Item     string `json:"item"`
	Price    int64  `json:"precio"`
	Quantity int    `json:"cantidad"`
}

func encodeSnapshot(keys Keys, lines []Line, total int64) (map[string]string, error) {
	out := make([]snapshotLine, len(lines))
	for i, l := range lines {
		out[i] = snapshotLine{Item: l.Item, Price: l.Price, Quantity: l.Quantity}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}

	return map[string]string{
		keys.Cart:  string(b),
		keys.Total: strconv.FormatInt(total, 10),
	}, nil
}

// decodeLines parses the persisted line array. Lines that break an
// invariant reject the whole snapshot; repeated items are merged, keeping
// the first price seen.
func decodeLines(raw string) ([]Line, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Line{}, nil
	}

	var in []snapshotLine
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedSnapshot, err)
	}

	lines := make([]Line, 0, len(in))
	var (
		total int64
		err   error
	)
	for i, l := range in {
		if strings.TrimSpace(l.Item) == "" || l.Price < 0 || l.Quantity < 1 {
			return nil, fmt.Errorf("%w: invalid line %d", errMalformedSnapshot, i)
		}
		if lines, total, err = mergeLine(lines, total, Line{Item: l.Item, Price: l.Price, Quantity: l.Quantity}); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", errMalformedSnapshot, i, err)
		}
	}
	return lines, nil
}

// mergeLine adds l to lines, bumping the quantity of an existing line for
// the same item instead of appending a duplicate, and returns the new total.
// total must be the sum of lines. A quantity that would overflow int, or a
// subtotal or total that would overflow int64, returns ErrTooLarge and
// leaves lines untouched.
func mergeLine(lines []Line, total int64, l Line) ([]Line, int64, error) {
	for i := range lines {
		if lines[i].Item != l.Item {
			continue
		}
		if l.Quantity > math.MaxInt-lines[i].Quantity {
			return lines, total, fmt.Errorf("%w: quantity of %q", ErrTooLarge, l.Item)
		}
		qty := lines[i].Quantity + l.Quantity
		sub, ok := subtotal(lines[i].Price, qty)
		rest := total - lines[i].Subtotal()
		if !ok || sub > math.MaxInt64-rest {
			return lines, total, fmt.Errorf("%w: total with %q", ErrTooLarge, l.Item)
		}
		lines[i].Quantity = qty
		return lines, rest + sub, nil
	}

	sub, ok := subtotal(l.Price, l.Quantity)
	if !ok || sub > math.MaxInt64-total {
		return lines, total, fmt.Errorf("%w: total with %q", ErrTooLarge, l.Item)
	}
	return append(lines, l), total + sub, nil
}

// subtotal is price*quantity for non-negative operands, false on overflow.
func subtotal(price int64, quantity int) (int64, bool) {
	if price != 0 && int64(quantity) > math.MaxInt64/price {
		return 0, false
	}
	return price * int64(quantity), true
}
