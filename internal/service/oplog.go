// internal/service/oplog.go
package service

import (
	"context"

	"inventory-service/pkg/models"

	"gorm.io/gorm"
)

type OperationLogService struct {
	db *gorm.DB
}

func NewOperationLogService(db *gorm.DB) *OperationLogService {
	return &OperationLogService{db: db}
}

// List pages through the audit trail, newest first. Read-only: entries are
// never mutated or deleted.
func (s *OperationLogService) List(ctx context.Context, module, opType string, limit, offset int) ([]models.OperationLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.OperationLog{})
	if module != "" {
		q = q.Where("module = ?", module)
	}
	if opType != "" {
		q = q.Where("operation_type = ?", opType)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []models.OperationLog
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}
