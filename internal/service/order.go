// internal/service/order.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-service/internal/cozesync"
	"inventory-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotPending   = errors.New("order is not pending")
	ErrInsufficientStock = errors.New("insufficient stock")
)

func generateOrderNo(prefix string) string {
	return fmt.Sprintf("%s%s-%s", prefix, time.Now().Format("20060102150405"), uuid.NewString()[:8])
}

func validateOrderRequest(req *models.OrderRequest) error {
	if req.CounterPartID == 0 {
		return invalidf("counterPartId is required")
	}
	if len(req.Items) == 0 {
		return invalidf("order must have at least one item")
	}
	for _, item := range req.Items {
		if item.ProductID == 0 {
			return invalidf("every item needs a productId")
		}
		if item.Quantity <= 0 {
			return invalidf("item quantities must be positive")
		}
		if item.UnitPrice < 0 {
			return invalidf("item prices must be non-negative")
		}
	}
	return nil
}

// checkProductsExist rejects orders referencing unknown or soft-deleted
// products. Historical orders may still point at since-deleted rows; new ones
// may not.
func checkProductsExist(ctx context.Context, tx *gorm.DB, items []models.OrderItemRequest) error {
	for _, item := range items {
		var count int64
		if err := tx.WithContext(ctx).Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidf("product %d not found", item.ProductID)
		}
	}
	return nil
}

type PurchaseOrderService struct {
	db         *gorm.DB
	dispatcher *cozesync.Dispatcher
}

func NewPurchaseOrderService(db *gorm.DB, dispatcher *cozesync.Dispatcher) *PurchaseOrderService {
	return &PurchaseOrderService{db: db, dispatcher: dispatcher}
}

func (s *PurchaseOrderService) List(ctx context.Context, status string, limit, offset int) ([]models.PurchaseOrder, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.PurchaseOrder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.PurchaseOrder
	err := q.Preload("Items").Order("id DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (s *PurchaseOrderService) Get(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Create stores a pending order. Stock is untouched until completion.
func (s *PurchaseOrderService) Create(ctx context.Context, req *models.OrderRequest, op Operator) (*models.PurchaseOrder, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	orderNo := req.OrderNo
	if orderNo == "" {
		orderNo = generateOrderNo("PO")
	}

	order := models.PurchaseOrder{
		OrderNo:    orderNo,
		SupplierID: req.CounterPartID,
		Status:     models.OrderStatusPending,
		Remark:     req.Remark,
	}
	for _, item := range req.Items {
		subtotal := float64(item.Quantity) * item.UnitPrice
		order.TotalAmount += subtotal
		order.Items = append(order.Items, models.PurchaseOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkProductsExist(ctx, tx, req.Items); err != nil {
			return err
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationCreate, "purchase_order", fmt.Sprint(order.ID), order.OrderNo, nil, order, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "purchase_orders", order.ID, models.SyncOpInsert)
	}
	return &order, nil
}

// Complete moves the order to completed and books stock in, atomically with
// the matching ledger records.
func (s *PurchaseOrderService) Complete(ctx context.Context, id uint, op Operator) (*models.PurchaseOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	before := *order

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			record := models.InventoryRecord{
				ProductID:      product.ID,
				ChangeType:     models.InventoryChangeIn,
				Quantity:       item.Quantity,
				QuantityBefore: product.CurrentQuantity,
				QuantityAfter:  product.CurrentQuantity + item.Quantity,
				Source:         order.OrderNo,
				Operator:       op.Name,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			if err := tx.Model(&product).Update("current_quantity", record.QuantityAfter).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		order.Status = models.OrderStatusCompleted
		order.CompletedAt = &now
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationComplete, "purchase_order", fmt.Sprint(order.ID), order.OrderNo, before, order, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "purchase_orders", order.ID, models.SyncOpUpdate)
	}
	return order, nil
}

func (s *PurchaseOrderService) Cancel(ctx context.Context, id uint, op Operator) (*models.PurchaseOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	before := *order

	order.Status = models.OrderStatusCancelled
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationCancel, "purchase_order", fmt.Sprint(order.ID), order.OrderNo, before, order, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "purchase_orders", order.ID, models.SyncOpUpdate)
	}
	return order, nil
}

type SalesOrderService struct {
	db         *gorm.DB
	dispatcher *cozesync.Dispatcher
}

func NewSalesOrderService(db *gorm.DB, dispatcher *cozesync.Dispatcher) *SalesOrderService {
	return &SalesOrderService{db: db, dispatcher: dispatcher}
}

func (s *SalesOrderService) List(ctx context.Context, status string, limit, offset int) ([]models.SalesOrder, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.SalesOrder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.SalesOrder
	err := q.Preload("Items").Order("id DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (s *SalesOrderService) Get(ctx context.Context, id uint) (*models.SalesOrder, error) {
	var order models.SalesOrder
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *SalesOrderService) Create(ctx context.Context, req *models.OrderRequest, op Operator) (*models.SalesOrder, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	orderNo := req.OrderNo
	if orderNo == "" {
		orderNo = generateOrderNo("SO")
	}

	order := models.SalesOrder{
		OrderNo:    orderNo,
		CustomerID: req.CounterPartID,
		Status:     models.OrderStatusPending,
		Remark:     req.Remark,
	}
	for _, item := range req.Items {
		subtotal := float64(item.Quantity) * item.UnitPrice
		order.TotalAmount += subtotal
		order.Items = append(order.Items, models.SalesOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkProductsExist(ctx, tx, req.Items); err != nil {
			return err
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationCreate, "sales_order", fmt.Sprint(order.ID), order.OrderNo, nil, order, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "sales_orders", order.ID, models.SyncOpInsert)
	}
	return &order, nil
}

// Complete books stock out. Every line must be coverable by current stock;
// quantities never go negative.
func (s *SalesOrderService) Complete(ctx context.Context, id uint, op Operator) (*models.SalesOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	before := *order

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			if product.CurrentQuantity < item.Quantity {
				return fmt.Errorf("%w: product %s has %d, order needs %d",
					ErrInsufficientStock, product.SKU, product.CurrentQuantity, item.Quantity)
			}
			record := models.InventoryRecord{
				ProductID:      product.ID,
				ChangeType:     models.InventoryChangeOut,
				Quantity:       -item.Quantity,
				QuantityBefore: product.CurrentQuantity,
				QuantityAfter:  product.CurrentQuantity - item.Quantity,
				Source:         order.OrderNo,
				Operator:       op.Name,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			if err := tx.Model(&product).Update("current_quantity", record.QuantityAfter).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		order.Status = models.OrderStatusCompleted
		order.CompletedAt = &now
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationComplete, "sales_order", fmt.Sprint(order.ID), order.OrderNo, before, order, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "sales_orders", order.ID, models.SyncOpUpdate)
	}
	return order, nil
}

func (s *SalesOrderService) Cancel(ctx context.Context, id uint, op Operator) (*models.SalesOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	before := *order

	order.Status = models.OrderStatusCancelled
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationCancel, "sales_order", fmt.Sprint(order.ID), order.OrderNo, before, order, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "sales_orders", order.ID, models.SyncOpUpdate)
	}
	return order, nil
}
