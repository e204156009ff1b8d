// internal/service/audit.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"inventory-service/pkg/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Operator identifies who performs a mutation, pulled from the auth context by
// the transport layer.
type Operator struct {
	ID   uint
	Name string
}

func snapshotJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️ snapshot marshal error: %v", err)
		return nil
	}
	return datatypes.JSON(b)
}

// logOperation appends one immutable audit record. Audit failures are logged,
// never propagated — the business mutation has already committed.
func logOperation(ctx context.Context, db *gorm.DB, opType, module, targetID, targetName string, before, after interface{}, op Operator) {
	entry := models.OperationLog{
		OperationType: opType,
		Module:        module,
		TargetID:      targetID,
		TargetName:    targetName,
		BeforeData:    snapshotJSON(before),
		AfterData:     snapshotJSON(after),
		OperatorID:    op.ID,
		OperatorName:  op.Name,
		Status:        models.OperationStatusSuccess,
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("⚠️ Failed to write operation log (%s %s/%s): %v", opType, module, targetID, err)
	}
}
