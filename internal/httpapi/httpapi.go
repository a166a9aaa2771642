package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"warungkita/backend/internal/domain"
	"warungkita/backend/internal/export"
	"warungkita/backend/internal/pos"
)

// sessionHeader carries the session id on every session-bound route.
const sessionHeader = "X-Session-ID"

type API struct {
	sessions      *pos.Manager
	allowedOrigin string
	createLimiter *attemptLimiter
}

func New(sessions *pos.Manager, allowedOrigin string) *API {
	return &API{
		sessions:      sessions,
		allowedOrigin: allowedOrigin,
		createLimiter: newAttemptLimiter(30, time.Minute),
	}
}

type attemptLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string][]time.Time
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &attemptLimiter{max: max, window: window, entries: make(map[string][]time.Time)}
}

func (l *attemptLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.entries[key]
	kept := make([]time.Time, 0, len(history)+1)
	for _, ts := range history {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.entries[key] = kept
		return false
	}
	kept = append(kept, now)
	l.entries[key] = kept
	return true
}

func clientKey(r *http.Request) string {
	host := strings.TrimSpace(r.RemoteAddr)
	if host == "" {
		return "unknown"
	}
	if addr, err := netip.ParseAddrPort(host); err == nil {
		return addr.Addr().String()
	}
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		return host[:idx]
	}
	return host
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)
	mux.HandleFunc("/api/v1/sessions", a.handleSessions)
	mux.HandleFunc("/api/v1/sessions/", a.handleSessionActions)

	mux.HandleFunc("/api/v1/products", a.withSession(a.handleProducts))
	mux.HandleFunc("/api/v1/cart", a.withSession(a.handleCart))
	mux.HandleFunc("/api/v1/cart/items", a.withSession(a.handleCartItems))
	mux.HandleFunc("/api/v1/cart/remove", a.withSession(a.handleCartRemove))
	mux.HandleFunc("/api/v1/cart/clear", a.withSession(a.handleCartClear))
	mux.HandleFunc("/api/v1/checkout/preview", a.withSession(a.handleCheckoutPreview))
	mux.HandleFunc("/api/v1/checkout/confirm", a.withSession(a.handleCheckoutConfirm))
	mux.HandleFunc("/api/v1/sales", a.withSession(a.handleSales))
	mux.HandleFunc("/api/v1/sales/", a.withSession(a.handleSaleDetail))
	mux.HandleFunc("/api/v1/exports/sales.csv", a.withSession(a.handleExportAllSales))
	mux.HandleFunc("/api/v1/exports/invoices/", a.withSession(a.handleExportInvoice))

	return a.withMiddleware(mux)
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, session *pos.Session)

// withSession resolves the X-Session-ID header into a live session before
// calling the wrapped handler.
func (a *API) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(sessionHeader))
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%s header required", sessionHeader))
			return
		}
		session, err := a.sessions.Get(sessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		next(w, r, session)
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if !a.createLimiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many session create attempts"))
		return
	}

	session, err := a.sessions.Create()
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, pos.ErrSessionLimit) {
			status = http.StatusTooManyRequests
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusCreated, domain.SessionCreateResponse{SessionID: session.ID})
}

func (a *API) handleSessionActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w)
		return
	}

	prefix := "/api/v1/sessions/"
	sessionID := strings.TrimSpace(strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/"))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, errors.New("session id required"))
		return
	}

	if err := a.sessions.Delete(sessionID); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *API) handleProducts(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"products": session.Catalog().Products()})
	case http.MethodPost:
		var req domain.ProductCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		product, err := session.AddProduct(req)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"product": product})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleCart(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, session.CartView())
}

func (a *API) handleCartItems(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.CartAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cart, err := session.AddToCart(strings.TrimSpace(req.ProductID), req.Qty)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (a *API) handleCartRemove(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.CartRemoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, session.RemoveFromCart(req.ProductIDs))
}

func (a *API) handleCartClear(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, session.ClearCart())
}

func (a *API) handleCheckoutPreview(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	preview, err := session.Preview(req.TaxPct, req.Discount)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (a *API) handleCheckoutConfirm(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := session.Checkout(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleSales(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	ledger := session.Ledger()
	writeJSON(w, http.StatusOK, domain.SalesHistoryView{
		Invoices:     ledger.Summaries(),
		ProductSales: ledger.ProductSales(),
	})
}

func (a *API) handleSaleDetail(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	prefix := "/api/v1/sales/"
	invoiceID := strings.TrimSpace(strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/"))
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, errors.New("invoice id required"))
		return
	}

	invoice, err := session.Ledger().Find(invoiceID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoice": invoice})
}

func (a *API) handleExportAllSales(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	payload, err := export.AllSales(session.Ledger().Invoices())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeCSV(w, "sales_items.csv", payload)
}

func (a *API) handleExportInvoice(w http.ResponseWriter, r *http.Request, session *pos.Session) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	prefix := "/api/v1/exports/invoices/"
	tail := strings.TrimSpace(strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/"))
	invoiceID := strings.TrimSuffix(tail, ".csv")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, errors.New("invoice id required"))
		return
	}

	invoice, err := session.Ledger().Find(invoiceID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	payload, err := export.Invoice(invoice)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeCSV(w, fmt.Sprintf("invoice_%s.csv", invoice.InvoiceID), payload)
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+sessionHeader)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodPost && strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(startedAt))
	})
}

// statusFor maps core sentinel errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pos.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pos.ErrNegativeTotal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pos.ErrValidation), errors.Is(err, pos.ErrEmptyCart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx responses get a generic message so internal details never leak;
	// 4xx messages are user-facing and returned as-is.
	msg := err.Error()
	if status >= 500 {
		log.Printf("internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeCSV(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
