package pos

import (
	"fmt"
	"slices"
	"sync"

	"warungkita/backend/internal/domain"
)

// Ledger is the append-only record of completed sales for one session.
// Invoices are immutable once appended and are never removed.
type Ledger struct {
	mu       sync.RWMutex
	invoices []domain.Invoice
	index    map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// Append adds the invoice to the end of the ledger. A duplicate invoice id
// is rejected; with 128-bit random ids this never happens in practice, but
// the ledger refuses to overwrite history regardless.
func (l *Ledger) Append(invoice domain.Invoice) error {
	if invoice.InvoiceID == "" {
		return fmt.Errorf("%w: invoice id must not be empty", ErrValidation)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.index[invoice.InvoiceID]; exists {
		return fmt.Errorf("%w: invoice %s already recorded", ErrValidation, invoice.InvoiceID)
	}
	l.index[invoice.InvoiceID] = len(l.invoices)
	l.invoices = append(l.invoices, cloneInvoice(invoice))
	return nil
}

// Find returns the invoice with the given id, or ErrNotFound.
func (l *Ledger) Find(invoiceID string) (domain.Invoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.index[invoiceID]
	if !ok {
		return domain.Invoice{}, fmt.Errorf("%w: invoice %s", ErrNotFound, invoiceID)
	}
	return cloneInvoice(l.invoices[idx]), nil
}

// Invoices returns a copy of the ledger in append order.
func (l *Ledger) Invoices() []domain.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()

	invoices := make([]domain.Invoice, 0, len(l.invoices))
	for _, invoice := range l.invoices {
		invoices = append(invoices, cloneInvoice(invoice))
	}
	return invoices
}

// Summaries returns one row per invoice, newest first, for the history table.
func (l *Ledger) Summaries() []domain.SalesSummaryRow {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rows := make([]domain.SalesSummaryRow, 0, len(l.invoices))
	for _, invoice := range l.invoices {
		rows = append(rows, domain.SalesSummaryRow{
			InvoiceID: invoice.InvoiceID,
			Date:      invoice.Date,
			Buyer:     invoice.Buyer,
			Total:     invoice.Total,
		})
	}
	slices.SortStableFunc(rows, func(a, b domain.SalesSummaryRow) int {
		if a.Date.After(b.Date) {
			return -1
		}
		if a.Date.Before(b.Date) {
			return 1
		}
		return 0
	})
	return rows
}

// ProductSales aggregates sold quantity per product name across all
// invoices, highest first. This feeds the sales-by-product chart.
func (l *Ledger) ProductSales() []domain.ProductSales {
	l.mu.RLock()
	defer l.mu.RUnlock()

	qtyByName := make(map[string]int)
	order := make([]string, 0, 8)
	for _, invoice := range l.invoices {
		for _, item := range invoice.Items {
			if _, seen := qtyByName[item.Name]; !seen {
				order = append(order, item.Name)
			}
			qtyByName[item.Name] += item.Quantity
		}
	}

	result := make([]domain.ProductSales, 0, len(order))
	for _, name := range order {
		result = append(result, domain.ProductSales{Name: name, Qty: qtyByName[name]})
	}
	slices.SortStableFunc(result, func(a, b domain.ProductSales) int {
		return b.Qty - a.Qty
	})
	return result
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.invoices)
}

func cloneInvoice(src domain.Invoice) domain.Invoice {
	dup := src
	items := make([]domain.InvoiceLine, len(src.Items))
	copy(items, src.Items)
	dup.Items = items
	return dup
}
