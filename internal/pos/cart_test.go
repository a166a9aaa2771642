package pos

import (
	"testing"

	"github.com/shopspring/decimal"

	"warungkita/backend/internal/domain"
)

func testProduct(id, name string, price int64, stock int) domain.Product {
	return domain.Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Stock: stock}
}

func TestCartAddLineSnapshotsProduct(t *testing.T) {
	cart := NewCart()
	line := cart.AddLine(testProduct("P001", "Kopi Arabika 250g", 75000, 10), 2)

	if line.ProductID != "P001" || line.Quantity != 2 {
		t.Fatalf("unexpected line: %+v", line)
	}
	if !line.LineTotal.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("expected line total 150000, got %s", line.LineTotal)
	}
}

func TestCartReAddingProductAppendsSecondLine(t *testing.T) {
	cart := NewCart()
	p := testProduct("P001", "Kopi Arabika 250g", 75000, 10)
	cart.AddLine(p, 1)
	cart.AddLine(p, 2)

	lines := cart.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected two separate lines, got %d", len(lines))
	}
	if lines[0].Quantity != 1 || lines[1].Quantity != 2 {
		t.Fatalf("expected quantities preserved per line, got %d/%d", lines[0].Quantity, lines[1].Quantity)
	}
}

func TestCartSubtotalSumsLineTotals(t *testing.T) {
	cart := NewCart()
	if !cart.Subtotal().Equal(decimal.Zero) {
		t.Fatalf("expected empty cart subtotal 0, got %s", cart.Subtotal())
	}

	cart.AddLine(testProduct("P001", "Kopi Arabika 250g", 75000, 10), 2)
	cart.AddLine(testProduct("P003", "Roti Tawar", 20000, 30), 1)

	if !cart.Subtotal().Equal(decimal.NewFromInt(170000)) {
		t.Fatalf("expected subtotal 170000, got %s", cart.Subtotal())
	}
}

func TestCartRemoveLines(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct("P001", "Kopi Arabika 250g", 75000, 10), 1)
	cart.AddLine(testProduct("P002", "Teh Hijau 200g", 45000, 15), 1)
	cart.AddLine(testProduct("P001", "Kopi Arabika 250g", 75000, 10), 3)

	if removed := cart.RemoveLines(nil); removed != 0 {
		t.Fatalf("expected empty selection to remove nothing, got %d", removed)
	}
	if cart.Len() != 3 {
		t.Fatalf("expected cart untouched after empty selection, got %d lines", cart.Len())
	}

	if removed := cart.RemoveLines([]string{"P001"}); removed != 2 {
		t.Fatalf("expected both P001 lines removed, got %d", removed)
	}
	lines := cart.Lines()
	if len(lines) != 1 || lines[0].ProductID != "P002" {
		t.Fatalf("expected only P002 left, got %+v", lines)
	}
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct("P001", "Kopi Arabika 250g", 75000, 10), 1)

	cart.Clear()
	if cart.Len() != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", cart.Len())
	}
	if !cart.Subtotal().Equal(decimal.Zero) {
		t.Fatalf("expected subtotal 0 after clear, got %s", cart.Subtotal())
	}
}
