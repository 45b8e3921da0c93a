// Package cart implements the client cart as an immutable value: every
// mutation returns a new snapshot and leaves the receiver untouched, so a
// failed checkout can never half-modify the state it started from.
package cart

import (
	"fmt"
	"strings"

	"github.com/avetisov/storefront-service/internal/domain/errors"
)

// Line pairs a variant with a quantity. UnitPrice is in minor units.
type Line struct {
	VariantID   string `json:"variant_id"`
	Title       string `json:"title"`
	VariantName string `json:"variant_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"image_url"`
}

// NormalizeLine enforces the line shape at the store boundary. A zero
// quantity is treated as "add one"; anything else malformed is rejected.
func NormalizeLine(l Line) (Line, error) {
	if strings.TrimSpace(l.VariantID) == "" {
		return Line{}, fmt.Errorf("%w: missing variant id", errors.ErrInvalidCartLine)
	}
	if l.UnitPrice < 0 {
		return Line{}, fmt.Errorf("%w: negative unit price", errors.ErrInvalidCartLine)
	}
	if l.Quantity < 0 {
		return Line{}, fmt.Errorf("%w: negative quantity", errors.ErrInvalidCartLine)
	}
	if l.Quantity == 0 {
		l.Quantity = 1
	}
	return l, nil
}

type Cart struct {
	Lines []Line `json:"lines"`
}

func New() Cart {
	return Cart{}
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Add merges by variant id: an existing line's quantity grows by the
// incoming quantity, otherwise the line is appended.
func (c Cart) Add(line Line) Cart {
	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].VariantID == line.VariantID {
			next.Lines[i].Quantity += line.Quantity
			return next
		}
	}
	next.Lines = append(next.Lines, line)
	return next
}

// ChangeQuantity applies delta to the matching line, flooring at 1. An
// absent variant id is a no-op, not a fault.
func (c Cart) ChangeQuantity(variantID string, delta int) Cart {
	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].VariantID == variantID {
			q := next.Lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			next.Lines[i].Quantity = q
			break
		}
	}
	return next
}

// Remove deletes the matching line unconditionally; no-op if absent.
func (c Cart) Remove(variantID string) Cart {
	next := Cart{Lines: make([]Line, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.VariantID == variantID {
			continue
		}
		next.Lines = append(next.Lines, l)
	}
	return next
}

// Prune is the invariant-enforcement pass: a line with quantity <= 0 is
// never persisted.
func (c Cart) Prune() Cart {
	next := Cart{Lines: make([]Line, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.Quantity <= 0 {
			continue
		}
		next.Lines = append(next.Lines, l)
	}
	return next
}

func (c Cart) Find(variantID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.VariantID == variantID {
			return l, true
		}
	}
	return Line{}, false
}

func (c Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

func (c Cart) QualifiesForFreeShipping(threshold int64) bool {
	return c.Subtotal() >= threshold
}

func (c Cart) TotalQuantity() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// FormatMinorUnits renders an amount in minor units with two decimals,
// e.g. 7997 -> "79.97".
func FormatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
