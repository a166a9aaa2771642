package pos

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"warungkita/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Session is the explicit session-scoped context object: one catalog, one
// cart, and one ledger, created at session start and discarded at session
// end. Command methods return the updated view-model so the rendering layer
// can re-render without reaching into the state directly.
type Session struct {
	ID string

	catalog *Catalog
	cart    *Cart
	ledger  *Ledger

	defaultBuyer        string
	rejectNegativeTotal bool

	// checkoutMu serializes Confirm so the invoice append, the stock
	// decrements, and the cart clear apply as one unit.
	checkoutMu sync.Mutex

	now func() time.Time
}

type SessionOptions struct {
	DefaultBuyer        string
	RejectNegativeTotal bool
	SeedCatalog         bool
}

func NewSession(opts SessionOptions) *Session {
	catalog := NewCatalog()
	if opts.SeedCatalog {
		catalog = NewSeededCatalog()
	}
	buyer := strings.TrimSpace(opts.DefaultBuyer)
	if buyer == "" {
		buyer = "Pelanggan"
	}
	return &Session{
		ID:                  uuid.NewString(),
		catalog:             catalog,
		cart:                NewCart(),
		ledger:              NewLedger(),
		defaultBuyer:        buyer,
		rejectNegativeTotal: opts.RejectNegativeTotal,
		now:                 func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (s *Session) Catalog() *Catalog { return s.catalog }
func (s *Session) Cart() *Cart       { return s.cart }
func (s *Session) Ledger() *Ledger   { return s.ledger }

func (s *Session) AddProduct(req domain.ProductCreateRequest) (domain.Product, error) {
	return s.catalog.AddProduct(req.Name, req.Price, req.Stock)
}

// AddToCart is the calling boundary for Cart.AddLine: it resolves the
// product and enforces 1 <= qty <= current stock before snapshotting.
func (s *Session) AddToCart(productID string, qty int) (domain.CartView, error) {
	product, err := s.catalog.Product(productID)
	if err != nil {
		return domain.CartView{}, err
	}
	if qty < 1 {
		return domain.CartView{}, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if qty > product.Stock {
		return domain.CartView{}, fmt.Errorf("%w: quantity %d exceeds stock %d for %s", ErrValidation, qty, product.Stock, product.ID)
	}

	s.cart.AddLine(product, qty)
	return s.CartView(), nil
}

// RemoveFromCart removes all lines matching the given product ids. An empty
// selection is not an error: nothing is removed and the result carries a
// warning for the user instead.
func (s *Session) RemoveFromCart(productIDs []string) domain.CartRemoveResult {
	if len(productIDs) == 0 {
		return domain.CartRemoveResult{
			Warning: "pilih minimal satu item untuk dihapus",
			Cart:    s.CartView(),
		}
	}
	removed := s.cart.RemoveLines(productIDs)
	return domain.CartRemoveResult{Removed: removed, Cart: s.CartView()}
}

func (s *Session) ClearCart() domain.CartView {
	s.cart.Clear()
	return s.CartView()
}

func (s *Session) CartView() domain.CartView {
	return domain.CartView{
		Lines:    s.cart.Lines(),
		Subtotal: s.cart.Subtotal(),
	}
}

// Preview derives subtotal, tax, and total for the current cart without
// mutating anything. A total below zero is flagged, not rejected.
func (s *Session) Preview(taxPct decimal.Decimal, discount decimal.Decimal) (domain.CheckoutPreview, error) {
	if err := validateCheckoutInputs(taxPct, discount); err != nil {
		return domain.CheckoutPreview{}, err
	}
	if s.cart.Len() == 0 {
		return domain.CheckoutPreview{}, ErrEmptyCart
	}
	return s.computePreview(taxPct, discount), nil
}

func (s *Session) computePreview(taxPct decimal.Decimal, discount decimal.Decimal) domain.CheckoutPreview {
	subtotal := s.cart.Subtotal()
	taxAmount := subtotal.Mul(taxPct).Div(hundred).Round(2)
	total := subtotal.Add(taxAmount).Sub(discount).Round(2)
	return domain.CheckoutPreview{
		Subtotal:      subtotal,
		TaxPct:        taxPct,
		TaxAmount:     taxAmount,
		Discount:      discount,
		Total:         total,
		NegativeTotal: total.IsNegative(),
	}
}

// Checkout confirms the sale: it emits an invoice to the ledger, decrements
// stock for every purchased line (clamped at zero), and clears the cart as
// one atomic unit. A negative total is allowed by default and reported as a
// warning; with RejectNegativeTotal set the checkout fails instead and no
// state changes.
func (s *Session) Checkout(req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	if err := validateCheckoutInputs(req.TaxPct, req.Discount); err != nil {
		return domain.CheckoutResult{}, err
	}

	s.checkoutMu.Lock()
	defer s.checkoutMu.Unlock()

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return domain.CheckoutResult{}, ErrEmptyCart
	}

	preview := s.computePreview(req.TaxPct, req.Discount)
	var warnings []string
	if preview.NegativeTotal {
		if s.rejectNegativeTotal {
			return domain.CheckoutResult{}, fmt.Errorf("%w: discount %s exceeds amount due", ErrNegativeTotal, req.Discount)
		}
		warnings = append(warnings, "total negatif — cek diskon")
	}

	buyer := strings.TrimSpace(req.Buyer)
	if buyer == "" {
		buyer = s.defaultBuyer
	}

	invoiceID := uuid.NewString()
	date := s.now()
	items := make([]domain.InvoiceLine, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.InvoiceLine{
			InvoiceID: invoiceID,
			Date:      date,
			CartLine:  line,
		})
	}

	invoice := domain.Invoice{
		InvoiceID: invoiceID,
		Date:      date,
		Buyer:     buyer,
		Subtotal:  preview.Subtotal,
		TaxPct:    preview.TaxPct,
		TaxAmount: preview.TaxAmount,
		Discount:  preview.Discount,
		Total:     preview.Total,
		Items:     items,
	}

	// Append first: if the ledger refuses the invoice nothing else has
	// been touched yet.
	if err := s.ledger.Append(invoice); err != nil {
		return domain.CheckoutResult{}, err
	}
	for _, line := range lines {
		s.catalog.DecrementStock(line.ProductID, line.Quantity)
	}
	s.cart.Clear()

	return domain.CheckoutResult{Invoice: invoice, Warnings: warnings}, nil
}

func validateCheckoutInputs(taxPct decimal.Decimal, discount decimal.Decimal) error {
	if taxPct.IsNegative() || taxPct.GreaterThan(hundred) {
		return fmt.Errorf("%w: tax percent must be between 0 and 100", ErrValidation)
	}
	if discount.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", ErrValidation)
	}
	return nil
}
