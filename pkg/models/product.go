package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

type ProductModel struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"type:varchar(100);not null"`
	CategoryID    *uint          `json:"categoryId" gorm:"index"`
	Specification string         `json:"specification" gorm:"type:text"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ProductModel) TableName() string {
	return "product_models"
}

// Product is the central inventory entity. CurrentQuantity is only ever
// mutated inside a transaction together with an InventoryRecord row.
type Product struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	SKU             string         `json:"sku" gorm:"type:varchar(64);uniqueIndex;not null"`
	Name            string         `json:"name" gorm:"type:varchar(200);not null;index"`
	CategoryID      *uint          `json:"categoryId" gorm:"index"`
	ModelID         *uint          `json:"modelId" gorm:"index"`
	SupplierID      *uint          `json:"supplierId" gorm:"index"`
	Unit            string         `json:"unit" gorm:"type:varchar(20)"`
	PurchasePrice   float64        `json:"purchasePrice" gorm:"not null;default:0"`
	SalePrice       float64        `json:"salePrice" gorm:"not null;default:0"`
	CurrentQuantity int            `json:"currentQuantity" gorm:"not null;default:0"`
	MinQuantity     int            `json:"minQuantity" gorm:"not null;default:0"`
	ImageURL        string         `json:"imageUrl" gorm:"type:varchar(500)"`
	Remark          string         `json:"remark" gorm:"type:text"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type ProductRequest struct {
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	CategoryID      *uint   `json:"categoryId,omitempty"`
	ModelID         *uint   `json:"modelId,omitempty"`
	SupplierID      *uint   `json:"supplierId,omitempty"`
	Unit            string  `json:"unit"`
	PurchasePrice   float64 `json:"purchasePrice"`
	SalePrice       float64 `json:"salePrice"`
	CurrentQuantity int     `json:"currentQuantity"`
	MinQuantity     int     `json:"minQuantity"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	Remark          string  `json:"remark,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductModelRequest struct {
	Name          string `json:"name"`
	CategoryID    *uint  `json:"categoryId,omitempty"`
	Specification string `json:"specification"`
}
