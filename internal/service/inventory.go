// internal/service/inventory.go
package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/cozesync"
	"inventory-service/pkg/models"

	"gorm.io/gorm"
)

type InventoryService struct {
	db         *gorm.DB
	dispatcher *cozesync.Dispatcher
}

func NewInventoryService(db *gorm.DB, dispatcher *cozesync.Dispatcher) *InventoryService {
	return &InventoryService{db: db, dispatcher: dispatcher}
}

// Records pages through the stock ledger, newest first.
func (s *InventoryService) Records(ctx context.Context, productID *uint, changeType string, limit, offset int) ([]models.InventoryRecord, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.InventoryRecord{})
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	if changeType != "" {
		q = q.Where("change_type = ?", changeType)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []models.InventoryRecord
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

// Adjust applies a signed manual stock correction inside one transaction with
// its ledger record. Stock never goes negative.
func (s *InventoryService) Adjust(ctx context.Context, req *models.InventoryAdjustRequest, op Operator) (*models.InventoryRecord, error) {
	if req.ProductID == 0 {
		return nil, invalidf("productId is required")
	}
	if req.Quantity == 0 {
		return nil, invalidf("quantity must be non-zero")
	}

	var record models.InventoryRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		after := product.CurrentQuantity + req.Quantity
		if after < 0 {
			return fmt.Errorf("%w: product %s has %d, adjustment is %d",
				ErrInsufficientStock, product.SKU, product.CurrentQuantity, req.Quantity)
		}

		record = models.InventoryRecord{
			ProductID:      product.ID,
			ChangeType:     models.InventoryChangeAdjust,
			Quantity:       req.Quantity,
			QuantityBefore: product.CurrentQuantity,
			QuantityAfter:  after,
			Source:         "manual",
			Operator:       op.Name,
			Remark:         req.Remark,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Model(&product).Update("current_quantity", after).Error
	})
	if err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationAdjust, "inventory", fmt.Sprint(req.ProductID), "", nil, record, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "products", req.ProductID, models.SyncOpUpdate)
	}
	return &record, nil
}
