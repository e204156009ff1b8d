// internal/service/coze_sync.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"inventory-service/internal/cozesync"
	"inventory-service/internal/schema"
	"inventory-service/pkg/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CozeSyncService manages sync configurations and fronts the dispatcher for
// manual sync and preview. Configs are never hard-deleted.
type CozeSyncService struct {
	db         *gorm.DB
	dispatcher *cozesync.Dispatcher
	registry   *schema.Registry
}

func NewCozeSyncService(db *gorm.DB, dispatcher *cozesync.Dispatcher, registry *schema.Registry) *CozeSyncService {
	return &CozeSyncService{db: db, dispatcher: dispatcher, registry: registry}
}

func (s *CozeSyncService) List(ctx context.Context, limit, offset int) ([]models.CozeSyncConfig, int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(&models.CozeSyncConfig{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var configs []models.CozeSyncConfig
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&configs).Error
	return configs, total, err
}

func (s *CozeSyncService) Get(ctx context.Context, id uint) (*models.CozeSyncConfig, error) {
	var cfg models.CozeSyncConfig
	if err := s.db.WithContext(ctx).First(&cfg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

func (s *CozeSyncService) validateRequest(req *models.CozeSyncConfigRequest) error {
	if req.Name == "" {
		return invalidf("name is required")
	}
	if req.SourceTable == "" {
		return invalidf("sourceTable is required")
	}
	if err := s.registry.ValidateFields(req.SourceTable, req.SelectedFields); err != nil {
		return invalidf("%v", err)
	}
	if req.InsertWorkflowID == "" && req.UpdateWorkflowID == "" && req.DeleteWorkflowID == "" {
		return invalidf("at least one workflow id is required")
	}
	return nil
}

func (s *CozeSyncService) Create(ctx context.Context, req *models.CozeSyncConfigRequest, op Operator) (*models.CozeSyncConfig, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	fields, _ := json.Marshal(req.SelectedFields)
	cfg := models.CozeSyncConfig{
		Name:             req.Name,
		SourceTable:      req.SourceTable,
		SelectedFields:   datatypes.JSON(fields),
		InsertWorkflowID: req.InsertWorkflowID,
		UpdateWorkflowID: req.UpdateWorkflowID,
		DeleteWorkflowID: req.DeleteWorkflowID,
		SyncOnInsert:     true,
		SyncOnUpdate:     true,
		SyncOnDelete:     false,
		Enabled:          true,
		Status:           models.SyncStatusActive,
	}
	if req.SyncOnInsert != nil {
		cfg.SyncOnInsert = *req.SyncOnInsert
	}
	if req.SyncOnUpdate != nil {
		cfg.SyncOnUpdate = *req.SyncOnUpdate
	}
	if req.SyncOnDelete != nil {
		cfg.SyncOnDelete = *req.SyncOnDelete
	}
	if req.Enabled != nil {
		cfg.Enabled = *req.Enabled
	}

	if err := s.db.WithContext(ctx).Create(&cfg).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationCreate, "coze_sync", fmt.Sprint(cfg.ID), cfg.Name, nil, cfg, op)
	return &cfg, nil
}

// Update rewrites the mutable parts of a config. Counters and last-sync state
// are owned by the dispatcher and left untouched.
func (s *CozeSyncService) Update(ctx context.Context, id uint, req *models.CozeSyncConfigRequest, op Operator) (*models.CozeSyncConfig, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	cfg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *cfg

	fields, _ := json.Marshal(req.SelectedFields)
	cfg.Name = req.Name
	cfg.SourceTable = req.SourceTable
	cfg.SelectedFields = datatypes.JSON(fields)
	cfg.InsertWorkflowID = req.InsertWorkflowID
	cfg.UpdateWorkflowID = req.UpdateWorkflowID
	cfg.DeleteWorkflowID = req.DeleteWorkflowID
	if req.SyncOnInsert != nil {
		cfg.SyncOnInsert = *req.SyncOnInsert
	}
	if req.SyncOnUpdate != nil {
		cfg.SyncOnUpdate = *req.SyncOnUpdate
	}
	if req.SyncOnDelete != nil {
		cfg.SyncOnDelete = *req.SyncOnDelete
	}
	if req.Enabled != nil {
		cfg.Enabled = *req.Enabled
	}

	if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationUpdate, "coze_sync", fmt.Sprint(cfg.ID), cfg.Name, before, cfg, op)
	return cfg, nil
}

// Pause stops automatic dispatch for the config until resumed.
func (s *CozeSyncService) Pause(ctx context.Context, id uint, op Operator) (*models.CozeSyncConfig, error) {
	return s.setStatus(ctx, id, models.SyncStatusPaused, op)
}

// Resume reactivates a paused or errored config.
func (s *CozeSyncService) Resume(ctx context.Context, id uint, op Operator) (*models.CozeSyncConfig, error) {
	return s.setStatus(ctx, id, models.SyncStatusActive, op)
}

func (s *CozeSyncService) setStatus(ctx context.Context, id uint, status string, op Operator) (*models.CozeSyncConfig, error) {
	cfg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *cfg
	cfg.Status = status
	if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationUpdate, "coze_sync", fmt.Sprint(cfg.ID), cfg.Name, before, cfg, op)
	return cfg, nil
}

func (s *CozeSyncService) ManualSync(ctx context.Context, id uint, batchSize int, filters map[string]string) (*cozesync.ManualSyncResult, error) {
	return s.dispatcher.ManualSync(ctx, id, batchSize, filters)
}

func (s *CozeSyncService) Preview(ctx context.Context, table string, fields []string, limit int) ([]map[string]interface{}, error) {
	return s.dispatcher.Preview(ctx, table, fields, limit)
}

func (s *CozeSyncService) ProcessPending(ctx context.Context, limit int) (int, error) {
	return s.dispatcher.ProcessPending(ctx, limit)
}
