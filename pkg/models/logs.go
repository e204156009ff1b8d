package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OperationCreate   = "create"
	OperationUpdate   = "update"
	OperationDelete   = "delete"
	OperationComplete = "complete"
	OperationCancel   = "cancel"
	OperationAdjust   = "adjust"
	OperationLogin    = "login"
)

const (
	OperationStatusSuccess = "success"
	OperationStatusFailed  = "failed"
)

// OperationLog is the immutable audit record of a business mutation: who did
// what to which row, with before/after snapshots. Never updated or deleted.
type OperationLog struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OperationType string         `json:"operationType" gorm:"type:varchar(20);not null;index"`
	Module        string         `json:"module" gorm:"type:varchar(40);not null;index"`
	TargetID      string         `json:"targetId" gorm:"type:varchar(64);index"`
	TargetName    string         `json:"targetName" gorm:"type:varchar(200)"`
	BeforeData    datatypes.JSON `json:"beforeData,omitempty" gorm:"type:jsonb"`
	AfterData     datatypes.JSON `json:"afterData,omitempty" gorm:"type:jsonb"`
	OperatorID    uint           `json:"operatorId" gorm:"index"`
	OperatorName  string         `json:"operatorName" gorm:"type:varchar(50)"`
	Status        string         `json:"status" gorm:"type:varchar(10);not null;default:'success'"`
	CreatedAt     time.Time      `json:"createdAt" gorm:"index"`
}

func (OperationLog) TableName() string {
	return "operation_logs"
}

// DataChangeLog buffers raw table mutations for the Coze sync dispatcher.
// Written on mutation, marked processed after delivery was attempted for every
// matching configuration (at-least-once semantics).
type DataChangeLog struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	SourceTable string         `json:"tableName" gorm:"column:table_name;type:varchar(64);not null;index:idx_change_table_op"`
	RecordID    uint           `json:"recordId" gorm:"not null"`
	Operation   string         `json:"operation" gorm:"type:varchar(10);not null;index:idx_change_table_op"`
	Payload     datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	Processed   bool           `json:"processed" gorm:"not null;default:false;index"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (DataChangeLog) TableName() string {
	return "data_change_logs"
}
