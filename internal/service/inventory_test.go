package service

import (
	"context"
	"errors"
	"testing"

	"inventory-service/pkg/models"
)

func TestAdjustInventory(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db, nil)
	s := NewInventoryService(db, nil)

	p, err := products.Create(context.Background(), &models.ProductRequest{
		SKU: "SKU-ADJ", Name: "Adjustable", CurrentQuantity: 10, MinQuantity: 2,
	}, testOp)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, err := s.Adjust(context.Background(), &models.InventoryAdjustRequest{
		ProductID: p.ID, Quantity: -3, Remark: "stocktake loss",
	}, testOp)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if rec.ChangeType != models.InventoryChangeAdjust || rec.QuantityBefore != 10 || rec.QuantityAfter != 7 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Source != "manual" || rec.Operator != testOp.Name {
		t.Errorf("provenance = %q/%q", rec.Source, rec.Operator)
	}

	got, _ := products.Get(context.Background(), p.ID)
	if got.CurrentQuantity != 7 {
		t.Errorf("stock = %d, want 7", got.CurrentQuantity)
	}
}

func TestAdjustRejectsNegativeResult(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db, nil)
	s := NewInventoryService(db, nil)

	p, err := products.Create(context.Background(), &models.ProductRequest{
		SKU: "SKU-NEG", Name: "Scarce", CurrentQuantity: 2,
	}, testOp)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := s.Adjust(context.Background(), &models.InventoryAdjustRequest{
		ProductID: p.ID, Quantity: -5,
	}, testOp); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("adjust = %v, want ErrInsufficientStock", err)
	}

	got, _ := products.Get(context.Background(), p.ID)
	if got.CurrentQuantity != 2 {
		t.Errorf("stock changed by rejected adjustment: %d", got.CurrentQuantity)
	}
}

func TestAdjustValidation(t *testing.T) {
	s := NewInventoryService(newTestDB(t), nil)

	if _, err := s.Adjust(context.Background(), &models.InventoryAdjustRequest{Quantity: 1}, testOp); !errors.Is(err, ErrValidation) {
		t.Errorf("missing product = %v, want ErrValidation", err)
	}
	if _, err := s.Adjust(context.Background(), &models.InventoryAdjustRequest{ProductID: 1}, testOp); !errors.Is(err, ErrValidation) {
		t.Errorf("zero quantity = %v, want ErrValidation", err)
	}
	if _, err := s.Adjust(context.Background(), &models.InventoryAdjustRequest{ProductID: 999, Quantity: 1}, testOp); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product = %v, want ErrNotFound", err)
	}
}

func TestRecordsFilter(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db, nil)
	s := NewInventoryService(db, nil)

	p, err := products.Create(context.Background(), &models.ProductRequest{
		SKU: "SKU-REC", Name: "Tracked", CurrentQuantity: 10,
	}, testOp)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Adjust(context.Background(), &models.InventoryAdjustRequest{ProductID: p.ID, Quantity: 5}, testOp); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	_, total, err := s.Records(context.Background(), &p.ID, "", 10, 0)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if total != 2 { // initial in + manual adjust
		t.Errorf("total = %d, want 2", total)
	}

	records, total, err := s.Records(context.Background(), &p.ID, models.InventoryChangeAdjust, 10, 0)
	if err != nil {
		t.Fatalf("records filtered: %v", err)
	}
	if total != 1 || records[0].ChangeType != models.InventoryChangeAdjust {
		t.Errorf("filtered = %d %+v", total, records)
	}
}
