// internal/service/catalog.go
package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/pkg/models"

	"gorm.io/gorm"
)

// CatalogService covers the supporting catalog tables: categories and models.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCategories(ctx context.Context, limit, offset int) ([]models.ProductCategory, int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(&models.ProductCategory{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var categories []models.ProductCategory
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&categories).Error
	return categories, total, err
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *models.CategoryRequest, op Operator) (*models.ProductCategory, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	category := models.ProductCategory{Name: req.Name, Description: req.Description}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationCreate, "category", fmt.Sprint(category.ID), category.Name, nil, category, op)
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req *models.CategoryRequest, op Operator) (*models.ProductCategory, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *category
	category.Name = req.Name
	category.Description = req.Description
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationUpdate, "category", fmt.Sprint(category.ID), category.Name, before, category, op)
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint, op Operator) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(category).Error; err != nil {
		return err
	}
	logOperation(ctx, s.db, models.OperationDelete, "category", fmt.Sprint(category.ID), category.Name, category, nil, op)
	return nil
}

func (s *CatalogService) ListModels(ctx context.Context, categoryID *uint, limit, offset int) ([]models.ProductModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.ProductModel{})
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var productModels []models.ProductModel
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&productModels).Error
	return productModels, total, err
}

func (s *CatalogService) GetModel(ctx context.Context, id uint) (*models.ProductModel, error) {
	var m models.ProductModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *CatalogService) CreateModel(ctx context.Context, req *models.ProductModelRequest, op Operator) (*models.ProductModel, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	m := models.ProductModel{Name: req.Name, CategoryID: req.CategoryID, Specification: req.Specification}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationCreate, "product_model", fmt.Sprint(m.ID), m.Name, nil, m, op)
	return &m, nil
}

func (s *CatalogService) UpdateModel(ctx context.Context, id uint, req *models.ProductModelRequest, op Operator) (*models.ProductModel, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	m, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *m
	m.Name = req.Name
	m.CategoryID = req.CategoryID
	m.Specification = req.Specification
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationUpdate, "product_model", fmt.Sprint(m.ID), m.Name, before, m, op)
	return m, nil
}

func (s *CatalogService) DeleteModel(ctx context.Context, id uint, op Operator) error {
	m, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(m).Error; err != nil {
		return err
	}
	logOperation(ctx, s.db, models.OperationDelete, "product_model", fmt.Sprint(m.ID), m.Name, m, nil, op)
	return nil
}
