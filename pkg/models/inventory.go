package models

import "time"

const (
	InventoryChangeIn     = "in"
	InventoryChangeOut    = "out"
	InventoryChangeAdjust = "adjust"
)

// InventoryRecord is one line of the append-only stock ledger. Quantity is the
// signed delta; Before/After snapshot the product quantity around the change.
type InventoryRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ProductID      uint      `json:"productId" gorm:"not null;index"`
	ChangeType     string    `json:"changeType" gorm:"type:varchar(10);not null;index"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	QuantityBefore int       `json:"quantityBefore" gorm:"not null"`
	QuantityAfter  int       `json:"quantityAfter" gorm:"not null"`
	Source         string    `json:"source" gorm:"type:varchar(64)"` // order no, or "manual"
	Operator       string    `json:"operator" gorm:"type:varchar(50)"`
	Remark         string    `json:"remark" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (InventoryRecord) TableName() string {
	return "inventory_records"
}

type InventoryAdjustRequest struct {
	ProductID uint   `json:"productId"`
	Quantity  int    `json:"quantity"` // signed delta
	Remark    string `json:"remark"`
}
