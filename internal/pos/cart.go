package pos

import (
	"sync"

	"github.com/shopspring/decimal"

	"warungkita/backend/internal/domain"
)

// Cart is the ordered list of lines assembled for the current checkout.
// Quantity bounds against live stock are a precondition of AddLine and are
// enforced by the calling boundary, not here.
type Cart struct {
	mu    sync.RWMutex
	lines []domain.CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddLine snapshots the product's current name and price into a new line.
// Re-adding a product that is already in the cart appends a second line
// rather than merging quantities.
func (c *Cart) AddLine(product domain.Product, qty int) domain.CartLine {
	line := domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  qty,
		LineTotal: product.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = append(c.lines, line)
	return line
}

// RemoveLines drops every line whose product id is in ids and reports how
// many lines were removed. An empty set removes nothing; the caller is
// expected to warn the user rather than treat that as an error.
func (c *Cart) RemoveLines(ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	removed := 0
	for _, line := range c.lines {
		if _, drop := idSet[line.ProductID]; drop {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	c.lines = kept
	return removed
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Subtotal is the sum of all line totals; zero for an empty cart.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	return subtotal
}

// Lines returns a copy of the cart in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines := make([]domain.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}
