package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type ProductCreateRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CartLine is a snapshot of a product at the time it was added to the cart.
// Name and UnitPrice are copied so later catalog changes never rewrite history.
type CartLine struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// InvoiceLine is a cart line tagged with the invoice it was sold under.
type InvoiceLine struct {
	InvoiceID string    `json:"invoice_id"`
	Date      time.Time `json:"date"`
	CartLine
}

type Invoice struct {
	InvoiceID string          `json:"invoice_id"`
	Date      time.Time       `json:"date"`
	Buyer     string          `json:"buyer"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxPct    decimal.Decimal `json:"tax_pct"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	Items     []InvoiceLine   `json:"items"`
}

type CartAddRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type CartRemoveRequest struct {
	ProductIDs []string `json:"product_ids"`
}

type CheckoutRequest struct {
	TaxPct   decimal.Decimal `json:"tax_pct"`
	Discount decimal.Decimal `json:"discount"`
	Buyer    string          `json:"buyer,omitempty"`
}

type CartView struct {
	Lines    []CartLine      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartRemoveResult struct {
	Removed int      `json:"removed"`
	Warning string   `json:"warning,omitempty"`
	Cart    CartView `json:"cart"`
}

type CheckoutPreview struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPct        decimal.Decimal `json:"tax_pct"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	NegativeTotal bool            `json:"negative_total"`
}

type CheckoutResult struct {
	Invoice  Invoice  `json:"invoice"`
	Warnings []string `json:"warnings,omitempty"`
}

type SalesSummaryRow struct {
	InvoiceID string          `json:"invoice_id"`
	Date      time.Time       `json:"date"`
	Buyer     string          `json:"buyer"`
	Total     decimal.Decimal `json:"total"`
}

type ProductSales struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type SalesHistoryView struct {
	Invoices     []SalesSummaryRow `json:"invoices"`
	ProductSales []ProductSales    `json:"product_sales"`
}

type SessionCreateResponse struct {
	SessionID string `json:"session_id"`
}
