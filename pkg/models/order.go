package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// PurchaseOrder moves stock in when completed; SalesOrder moves stock out.
// Orders are soft-deleted only while pending — completed orders are part of
// the ledger history.

type PurchaseOrder struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	OrderNo     string              `json:"orderNo" gorm:"type:varchar(40);uniqueIndex;not null"`
	SupplierID  uint                `json:"supplierId" gorm:"not null;index"`
	Status      string              `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount float64             `json:"totalAmount" gorm:"not null;default:0"`
	Remark      string              `json:"remark" gorm:"type:text"`
	Items       []PurchaseOrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt      `json:"-" gorm:"index"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

type PurchaseOrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"orderId" gorm:"not null;index"`
	ProductID uint    `json:"productId" gorm:"not null;index"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unitPrice" gorm:"not null"`
	Subtotal  float64 `json:"subtotal" gorm:"not null"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

type SalesOrder struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	OrderNo     string           `json:"orderNo" gorm:"type:varchar(40);uniqueIndex;not null"`
	CustomerID  uint             `json:"customerId" gorm:"not null;index"`
	Status      string           `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount float64          `json:"totalAmount" gorm:"not null;default:0"`
	Remark      string           `json:"remark" gorm:"type:text"`
	Items       []SalesOrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`
}

func (SalesOrder) TableName() string {
	return "sales_orders"
}

type SalesOrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"orderId" gorm:"not null;index"`
	ProductID uint    `json:"productId" gorm:"not null;index"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unitPrice" gorm:"not null"`
	Subtotal  float64 `json:"subtotal" gorm:"not null"`
}

func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

type OrderItemRequest struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type OrderRequest struct {
	OrderNo       string             `json:"orderNo,omitempty"` // generated when empty
	CounterPartID uint               `json:"counterPartId"`     // supplier or customer id
	Remark        string             `json:"remark"`
	Items         []OrderItemRequest `json:"items"`
}
