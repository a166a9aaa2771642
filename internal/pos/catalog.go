package pos

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"warungkita/backend/internal/domain"
)

// Catalog is the ordered collection of sellable products for one session.
// Products are only ever added or stock-decremented, never deleted, so ids
// stay stable for the session's lifetime.
type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
	index    map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// NewSeededCatalog returns a catalog preloaded with the demo assortment.
func NewSeededCatalog() *Catalog {
	c := NewCatalog()
	for _, p := range []struct {
		name  string
		price int64
		stock int
	}{
		{"Kopi Arabika 250g", 75000, 10},
		{"Teh Hijau 200g", 45000, 15},
		{"Roti Tawar", 20000, 30},
	} {
		// Seed input is static and valid, so the error is impossible.
		_, _ = c.AddProduct(p.name, decimal.NewFromInt(p.price), p.stock)
	}
	return c
}

// AddProduct allocates the next sequential id and appends a new product.
// The name is trimmed; an empty name, negative price, or negative stock is
// rejected with ErrValidation and leaves the catalog untouched.
func (c *Catalog) AddProduct(name string, price decimal.Decimal, stock int) (domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name must not be empty", ErrValidation)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	product := domain.Product{
		ID:    fmt.Sprintf("P%03d", len(c.products)+1),
		Name:  name,
		Price: price,
		Stock: stock,
	}
	c.index[product.ID] = len(c.products)
	c.products = append(c.products, product)
	return product, nil
}

// DecrementStock lowers the product's stock by qty, clamping at zero.
// An unknown id is silently ignored; callers that care should look the
// product up first.
func (c *Catalog) DecrementStock(productID string, qty int) {
	if qty < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.index[productID]
	if !ok {
		return
	}
	remaining := c.products[idx].Stock - qty
	if remaining < 0 {
		remaining = 0
	}
	c.products[idx].Stock = remaining
}

// Product returns the product with the given id, or ErrNotFound.
func (c *Catalog) Product(productID string) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.index[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	return c.products[idx], nil
}

// Products returns a copy of the catalog in insertion order.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]domain.Product, len(c.products))
	copy(products, c.products)
	return products
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
