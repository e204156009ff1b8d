// internal/service/product.go
package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/cozesync"
	"inventory-service/pkg/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

const productsTable = "products"

type ProductListParams struct {
	Keyword    string
	CategoryID *uint
	SupplierID *uint
	Limit      int
	Offset     int
}

type ProductService struct {
	db         *gorm.DB
	dispatcher *cozesync.Dispatcher
}

func NewProductService(db *gorm.DB, dispatcher *cozesync.Dispatcher) *ProductService {
	return &ProductService{db: db, dispatcher: dispatcher}
}

// List returns a page of live products plus the unpaginated total.
func (s *ProductService) List(ctx context.Context, p ProductListParams) ([]models.Product, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{})
	if p.Keyword != "" {
		like := "%" + p.Keyword + "%"
		q = q.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	if p.CategoryID != nil {
		q = q.Where("category_id = ?", *p.CategoryID)
	}
	if p.SupplierID != nil {
		q = q.Where("supplier_id = ?", *p.SupplierID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := q.Order("id DESC").Limit(p.Limit).Offset(p.Offset).Find(&products).Error
	return products, total, err
}

// LowStock lists live products whose stock has dropped below their minimum quantity.
func (s *ProductService) LowStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("current_quantity < min_quantity").
		Order("current_quantity ASC").
		Find(&products).Error
	return products, err
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func validateProductRequest(req *models.ProductRequest) error {
	if req.SKU == "" || req.Name == "" {
		return invalidf("sku and name are required")
	}
	if req.PurchasePrice < 0 || req.SalePrice < 0 {
		return invalidf("prices must be non-negative")
	}
	if req.CurrentQuantity < 0 || req.MinQuantity < 0 {
		return invalidf("quantities must be non-negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, req *models.ProductRequest, op Operator) (*models.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := models.Product{
		SKU:             req.SKU,
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		ModelID:         req.ModelID,
		SupplierID:      req.SupplierID,
		Unit:            req.Unit,
		PurchasePrice:   req.PurchasePrice,
		SalePrice:       req.SalePrice,
		CurrentQuantity: req.CurrentQuantity,
		MinQuantity:     req.MinQuantity,
		ImageURL:        req.ImageURL,
		Remark:          req.Remark,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if product.CurrentQuantity > 0 {
			record := models.InventoryRecord{
				ProductID:      product.ID,
				ChangeType:     models.InventoryChangeIn,
				Quantity:       product.CurrentQuantity,
				QuantityBefore: 0,
				QuantityAfter:  product.CurrentQuantity,
				Source:         "initial",
				Operator:       op.Name,
			}
			return tx.Create(&record).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationCreate, "product", fmt.Sprint(product.ID), product.Name, nil, product, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, productsTable, product.ID, models.SyncOpInsert)
	}
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, req *models.ProductRequest, op Operator) (*models.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *product

	product.SKU = req.SKU
	product.Name = req.Name
	product.CategoryID = req.CategoryID
	product.ModelID = req.ModelID
	product.SupplierID = req.SupplierID
	product.Unit = req.Unit
	product.PurchasePrice = req.PurchasePrice
	product.SalePrice = req.SalePrice
	product.MinQuantity = req.MinQuantity
	product.ImageURL = req.ImageURL
	product.Remark = req.Remark
	// CurrentQuantity only moves through orders and inventory adjustments.

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationUpdate, "product", fmt.Sprint(product.ID), product.Name, before, product, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, productsTable, product.ID, models.SyncOpUpdate)
	}
	return product, nil
}

// Delete soft-deletes the product. Historical orders keep referencing it.
func (s *ProductService) Delete(ctx context.Context, id uint, op Operator) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return err
	}

	logOperation(ctx, s.db, models.OperationDelete, "product", fmt.Sprint(product.ID), product.Name, product, nil, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, productsTable, product.ID, models.SyncOpDelete)
	}
	return nil
}
