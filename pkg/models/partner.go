package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier and Customer share the same shape but live in separate tables so
// historical orders keep valid foreign keys on either side.

type Supplier struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"type:varchar(200);not null;index"`
	ContactPerson string         `json:"contactPerson" gorm:"type:varchar(100)"`
	Phone         string         `json:"phone" gorm:"type:varchar(30)"`
	Email         string         `json:"email" gorm:"type:varchar(255)"`
	Address       string         `json:"address" gorm:"type:varchar(500)"`
	Remark        string         `json:"remark" gorm:"type:text"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

type Customer struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"type:varchar(200);not null;index"`
	ContactPerson string         `json:"contactPerson" gorm:"type:varchar(100)"`
	Phone         string         `json:"phone" gorm:"type:varchar(30)"`
	Email         string         `json:"email" gorm:"type:varchar(255)"`
	Address       string         `json:"address" gorm:"type:varchar(500)"`
	Remark        string         `json:"remark" gorm:"type:text"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}

type PartnerRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Remark        string `json:"remark"`
}
