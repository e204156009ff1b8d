package service

import (
	"context"
	"errors"
	"testing"

	"inventory-service/pkg/models"
)

func TestProductCreateWritesInitialLedgerEntry(t *testing.T) {
	db := newTestDB(t)
	s := NewProductService(db, nil)

	p, err := s.Create(context.Background(), &models.ProductRequest{
		SKU:             "SKU-100",
		Name:            "Hex bolt",
		CurrentQuantity: 40,
		MinQuantity:     10,
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var records []models.InventoryRecord
	if err := db.Where("product_id = ?", p.ID).Find(&records).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(records))
	}
	r := records[0]
	if r.ChangeType != models.InventoryChangeIn || r.Quantity != 40 || r.QuantityAfter != 40 || r.Source != "initial" {
		t.Errorf("initial ledger entry = %+v", r)
	}

	// Zero-quantity products get no ledger entry.
	p2, err := s.Create(context.Background(), &models.ProductRequest{SKU: "SKU-101", Name: "Empty"}, testOp)
	if err != nil {
		t.Fatalf("create empty: %v", err)
	}
	var count int64
	db.Model(&models.InventoryRecord{}).Where("product_id = ?", p2.ID).Count(&count)
	if count != 0 {
		t.Errorf("empty product got %d ledger entries", count)
	}
}

func TestProductCreateValidation(t *testing.T) {
	s := NewProductService(newTestDB(t), nil)

	tests := []struct {
		name string
		req  models.ProductRequest
	}{
		{"missing sku", models.ProductRequest{Name: "x"}},
		{"missing name", models.ProductRequest{SKU: "x"}},
		{"negative price", models.ProductRequest{SKU: "x", Name: "x", SalePrice: -1}},
		{"negative quantity", models.ProductRequest{SKU: "x", Name: "x", CurrentQuantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), &tt.req, testOp)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestProductUpdateNeverTouchesStock(t *testing.T) {
	db := newTestDB(t)
	s := NewProductService(db, nil)

	p, err := s.Create(context.Background(), &models.ProductRequest{
		SKU: "SKU-1", Name: "Before", CurrentQuantity: 7, MinQuantity: 2,
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.Update(context.Background(), p.ID, &models.ProductRequest{
		SKU: "SKU-1", Name: "After", CurrentQuantity: 999, MinQuantity: 3,
	}, testOp)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "After" || updated.MinQuantity != 3 {
		t.Errorf("fields not updated: %+v", updated)
	}
	if updated.CurrentQuantity != 7 {
		t.Errorf("stock changed through update: %d, want 7", updated.CurrentQuantity)
	}
}

func TestProductSoftDelete(t *testing.T) {
	db := newTestDB(t)
	s := NewProductService(db, nil)

	p, err := s.Create(context.Background(), &models.ProductRequest{SKU: "SKU-DEL", Name: "Gone"}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(context.Background(), p.ID, testOp); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.Get(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	_, total, err := s.List(context.Background(), ProductListParams{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("deleted product still listed: total=%d", total)
	}

	// The row survives for historical references.
	var count int64
	db.Unscoped().Model(&models.Product{}).Where("id = ?", p.ID).Count(&count)
	if count != 1 {
		t.Error("product was hard-deleted")
	}
}

func TestLowStockBoundary(t *testing.T) {
	db := newTestDB(t)
	s := NewProductService(db, nil)

	mk := func(sku string, cur, min int) {
		if _, err := s.Create(context.Background(), &models.ProductRequest{
			SKU: sku, Name: sku, CurrentQuantity: cur, MinQuantity: min,
		}, testOp); err != nil {
			t.Fatalf("create %s: %v", sku, err)
		}
	}
	mk("LOW", 5, 10)
	mk("AT-MIN", 10, 10)
	mk("OK", 20, 10)

	low, err := s.LowStock(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 1 || low[0].SKU != "LOW" {
		t.Errorf("low stock = %v", low)
	}
}

func TestProductListFilters(t *testing.T) {
	db := newTestDB(t)
	s := NewProductService(db, nil)

	supplier := models.Supplier{Name: "Acme"}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	if _, err := s.Create(context.Background(), &models.ProductRequest{
		SKU: "BOLT-1", Name: "Hex bolt", SupplierID: &supplier.ID,
	}, testOp); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(context.Background(), &models.ProductRequest{SKU: "NUT-1", Name: "Hex nut"}, testOp); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, total, err := s.List(context.Background(), ProductListParams{Keyword: "bolt", Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Errorf("keyword match total = %d, want 1", total)
	}

	_, total, err = s.List(context.Background(), ProductListParams{SupplierID: &supplier.ID, Limit: 10})
	if err != nil {
		t.Fatalf("list by supplier: %v", err)
	}
	if total != 1 {
		t.Errorf("supplier filter total = %d, want 1", total)
	}
}
