package pos

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"warungkita/backend/internal/domain"
)

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := NewManager(SessionOptions{SeedCatalog: true}, 8)

	a, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct session ids")
	}

	if _, err := a.AddToCart("P001", 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if _, err := a.AddProduct(domain.ProductCreateRequest{Name: "Gula Pasir", Price: decimal.NewFromInt(12000), Stock: 5}); err != nil {
		t.Fatalf("add product: %v", err)
	}

	if b.Cart().Len() != 0 {
		t.Fatalf("expected session b cart empty, got %d lines", b.Cart().Len())
	}
	if b.Catalog().Len() != 3 {
		t.Fatalf("expected session b catalog unchanged, got %d products", b.Catalog().Len())
	}
}

func TestManagerGetAndDelete(t *testing.T) {
	m := NewManager(SessionOptions{}, 8)

	s, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Fatalf("expected same session instance back")
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := m.Delete(s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestManagerEnforcesSessionLimit(t *testing.T) {
	m := NewManager(SessionOptions{}, 2)

	if _, err := m.Create(); err != nil {
		t.Fatalf("create: %v", err)
	}
	s, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := m.Create(); !errors.Is(err, ErrSessionLimit) {
		t.Fatalf("expected ErrSessionLimit, got %v", err)
	}

	// Deleting a session frees a slot.
	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Create(); err != nil {
		t.Fatalf("expected create to succeed after delete, got %v", err)
	}
}
