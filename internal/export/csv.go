// Package export renders the sales ledger as downloadable CSV documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"warungkita/backend/internal/domain"
)

// dateLayout matches the second-precision, zone-free timestamps the invoice
// history has always used.
const dateLayout = "2006-01-02T15:04:05"

var allSalesHeader = []string{"invoiceId", "date", "id", "name", "price", "qty", "lineTotal"}

var invoiceHeader = []string{"id", "name", "price", "qty", "lineTotal"}

// AllSales renders one row per line item across every invoice, in
// invoice-append order, preceded by a header row.
func AllSales(invoices []domain.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(allSalesHeader); err != nil {
		return nil, fmt.Errorf("write sales header: %w", err)
	}
	for _, invoice := range invoices {
		for _, item := range invoice.Items {
			record := []string{
				item.InvoiceID,
				formatDate(item.Date),
				item.ProductID,
				item.Name,
				item.UnitPrice.String(),
				fmt.Sprintf("%d", item.Quantity),
				item.LineTotal.String(),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("write sales row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush sales csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Invoice renders a single invoice: the item rows followed by the
// Subtotal / Pajak / Diskon / Total footer rows.
func Invoice(invoice domain.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(invoiceHeader); err != nil {
		return nil, fmt.Errorf("write invoice header: %w", err)
	}
	for _, item := range invoice.Items {
		record := []string{
			item.ProductID,
			item.Name,
			item.UnitPrice.String(),
			fmt.Sprintf("%d", item.Quantity),
			item.LineTotal.String(),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write invoice row: %w", err)
		}
	}

	footer := [][]string{
		{"", "Subtotal", "", "", invoice.Subtotal.String()},
		{"", fmt.Sprintf("Pajak (%s%%)", invoice.TaxPct.String()), "", "", invoice.TaxAmount.String()},
		{"", "Diskon", "", "", invoice.Discount.String()},
		{"", "Total", "", "", invoice.Total.String()},
	}
	for _, record := range footer {
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write invoice footer: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush invoice csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
