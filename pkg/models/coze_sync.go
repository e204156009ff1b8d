package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SyncStatusActive = "active"
	SyncStatusError  = "error"
	SyncStatusPaused = "paused"
)

const (
	SyncOpInsert = "insert"
	SyncOpUpdate = "update"
	SyncOpDelete = "delete"
)

const (
	SyncTriggerAuto   = "auto"
	SyncTriggerManual = "manual"
)

// CozeSyncConfig describes how one source table's mutations are mirrored to
// Coze workflows. Rows are never hard-deleted; disabling happens through the
// Enabled flag or the paused status. Counters satisfy
// TotalSyncCount == SuccessSyncCount + FailedSyncCount at all times.
type CozeSyncConfig struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	SourceTable    string         `json:"sourceTable" gorm:"type:varchar(64);not null;index"`
	SelectedFields datatypes.JSON `json:"selectedFields" gorm:"type:jsonb"` // []string; empty = all columns

	InsertWorkflowID string `json:"insertWorkflowId" gorm:"type:varchar(128)"`
	UpdateWorkflowID string `json:"updateWorkflowId" gorm:"type:varchar(128)"`
	DeleteWorkflowID string `json:"deleteWorkflowId" gorm:"type:varchar(128)"`

	SyncOnInsert bool `json:"syncOnInsert" gorm:"not null"`
	SyncOnUpdate bool `json:"syncOnUpdate" gorm:"not null"`
	SyncOnDelete bool `json:"syncOnDelete" gorm:"not null"`

	Enabled bool   `json:"enabled" gorm:"not null"`
	Status  string `json:"status" gorm:"type:varchar(20);not null;default:'active'"`

	TotalSyncCount   int64 `json:"totalSyncCount" gorm:"not null;default:0"`
	SuccessSyncCount int64 `json:"successSyncCount" gorm:"not null;default:0"`
	FailedSyncCount  int64 `json:"failedSyncCount" gorm:"not null;default:0"`
	InsertSyncCount  int64 `json:"insertSyncCount" gorm:"not null;default:0"`
	UpdateSyncCount  int64 `json:"updateSyncCount" gorm:"not null;default:0"`
	DeleteSyncCount  int64 `json:"deleteSyncCount" gorm:"not null;default:0"`
	ManualSyncCount  int64 `json:"manualSyncCount" gorm:"not null;default:0"`
	AutoSyncCount    int64 `json:"autoSyncCount" gorm:"not null;default:0"`

	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
	LastSyncType string     `json:"lastSyncType" gorm:"type:varchar(10)"`
	LastError    string     `json:"lastError" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CozeSyncConfig) TableName() string {
	return "coze_sync_configs"
}

// WorkflowIDFor returns the workflow bound to an operation type, empty when
// none is configured.
func (c *CozeSyncConfig) WorkflowIDFor(op string) string {
	switch op {
	case SyncOpInsert:
		return c.InsertWorkflowID
	case SyncOpUpdate:
		return c.UpdateWorkflowID
	case SyncOpDelete:
		return c.DeleteWorkflowID
	}
	return ""
}

// OpEnabled reports whether an operation type is enabled on this config.
func (c *CozeSyncConfig) OpEnabled(op string) bool {
	switch op {
	case SyncOpInsert:
		return c.SyncOnInsert
	case SyncOpUpdate:
		return c.SyncOnUpdate
	case SyncOpDelete:
		return c.SyncOnDelete
	}
	return false
}

type CozeSyncConfigRequest struct {
	Name             string   `json:"name"`
	SourceTable      string   `json:"sourceTable"`
	SelectedFields   []string `json:"selectedFields"`
	InsertWorkflowID string   `json:"insertWorkflowId"`
	UpdateWorkflowID string   `json:"updateWorkflowId"`
	DeleteWorkflowID string   `json:"deleteWorkflowId"`
	SyncOnInsert     *bool    `json:"syncOnInsert,omitempty"`
	SyncOnUpdate     *bool    `json:"syncOnUpdate,omitempty"`
	SyncOnDelete     *bool    `json:"syncOnDelete,omitempty"`
	Enabled          *bool    `json:"enabled,omitempty"`
}
