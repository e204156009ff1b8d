// internal/cozesync/dispatcher.go
package cozesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"inventory-service/internal/schema"
	"inventory-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrConfigNotFound = errors.New("sync config not found")

// Dispatcher mirrors table mutations to Coze workflows. Each mutation is
// evaluated independently: a failed delivery flips the config to the error
// status and records the error, but later mutations are still attempted.
// Counter updates are not guarded against concurrent sync attempts on the
// same config.
type Dispatcher struct {
	db       *gorm.DB
	client   *Client
	registry *schema.Registry
}

func NewDispatcher(db *gorm.DB, client *Client, registry *schema.Registry) *Dispatcher {
	return &Dispatcher{db: db, client: client, registry: registry}
}

// NotifyChange records a table mutation in the change log and dispatches it to
// every matching configuration. Called by the service layer after a business
// mutation commits; delivery failures are absorbed here and never fail the
// originating request.
func (d *Dispatcher) NotifyChange(ctx context.Context, table string, recordID uint, op string) {
	payload, err := d.loadRow(ctx, table, recordID)
	if err != nil {
		log.Printf("⚠️ [COZE] Could not load %s row %d for %s sync: %v", table, recordID, op, err)
		return
	}

	raw, _ := json.Marshal(payload)
	entry := models.DataChangeLog{
		SourceTable: table,
		RecordID:    recordID,
		Operation:   op,
		Payload:     datatypes.JSON(raw),
	}
	if err := d.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("⚠️ [COZE] Failed to record change log for %s/%d: %v", table, recordID, err)
	}

	d.dispatch(ctx, table, op, models.SyncTriggerAuto, payload)

	if entry.ID != 0 {
		if err := d.db.WithContext(ctx).Model(&models.DataChangeLog{}).
			Where("id = ?", entry.ID).
			Update("processed", true).Error; err != nil {
			log.Printf("⚠️ [COZE] Failed to mark change %d processed: %v", entry.ID, err)
		}
	}
}

// ProcessPending drains unprocessed change-log entries, dispatching each to
// the matching configurations. This is the operator-triggered replacement for
// the disabled background capture worker.
func (d *Dispatcher) ProcessPending(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.DataChangeLog
	err := d.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		var payload map[string]interface{}
		if err := json.Unmarshal(entry.Payload, &payload); err != nil {
			log.Printf("⚠️ [COZE] Skipping change %d: bad payload: %v", entry.ID, err)
		} else {
			d.dispatch(ctx, entry.SourceTable, entry.Operation, models.SyncTriggerAuto, payload)
		}
		if err := d.db.WithContext(ctx).Model(&models.DataChangeLog{}).
			Where("id = ?", entry.ID).
			Update("processed", true).Error; err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

// dispatch sends one payload through every enabled, non-paused configuration
// that covers this table and operation type.
func (d *Dispatcher) dispatch(ctx context.Context, table, op, trigger string, payload map[string]interface{}) {
	var configs []models.CozeSyncConfig
	err := d.db.WithContext(ctx).
		Where("source_table = ? AND enabled = ?", table, true).
		Where("status <> ?", models.SyncStatusPaused).
		Find(&configs).Error
	if err != nil {
		log.Printf("⚠️ [COZE] Failed to load sync configs for %s: %v", table, err)
		return
	}

	for i := range configs {
		cfg := &configs[i]
		if !cfg.OpEnabled(op) {
			continue
		}
		d.deliver(ctx, cfg, op, trigger, cfg.WorkflowIDFor(op), payload)
	}
}

// deliver sends one payload through one config and updates its counters.
// Total always equals success + failed afterwards.
func (d *Dispatcher) deliver(ctx context.Context, cfg *models.CozeSyncConfig, op, trigger, workflowID string, payload map[string]interface{}) error {
	filtered := d.filterFields(cfg, payload)

	syncErr := d.client.RunWorkflow(ctx, workflowID, filtered)

	cfg.TotalSyncCount++
	if syncErr != nil {
		cfg.FailedSyncCount++
		cfg.LastError = syncErr.Error()
		cfg.Status = models.SyncStatusError
		log.Printf("❌ [COZE] Config %d (%s) %s sync failed: %v", cfg.ID, cfg.Name, op, syncErr)
	} else {
		cfg.SuccessSyncCount++
		switch op {
		case models.SyncOpInsert:
			cfg.InsertSyncCount++
		case models.SyncOpUpdate:
			cfg.UpdateSyncCount++
		case models.SyncOpDelete:
			cfg.DeleteSyncCount++
		}
		switch trigger {
		case models.SyncTriggerManual:
			cfg.ManualSyncCount++
		case models.SyncTriggerAuto:
			cfg.AutoSyncCount++
		}
		now := time.Now()
		cfg.LastSyncTime = &now
		cfg.LastSyncType = op
		cfg.LastError = ""
		cfg.Status = models.SyncStatusActive
	}

	if err := d.db.WithContext(ctx).Save(cfg).Error; err != nil {
		log.Printf("⚠️ [COZE] Failed to persist counters for config %d: %v", cfg.ID, err)
	}
	return syncErr
}

// RowResult reports one row of a manual sync batch.
type RowResult struct {
	RecordID uint   `json:"recordId"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// ManualSyncResult summarizes one operator-initiated bulk sync.
type ManualSyncResult struct {
	BatchID   string      `json:"batchId"`
	ConfigID  uint        `json:"configId"`
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Rows      []RowResult `json:"rows"`
}

// ManualSync pushes existing rows of the config's source table through its
// insert workflow, batchSize rows per page, sequentially. A single row failure
// does not abort the batch.
func (d *Dispatcher) ManualSync(ctx context.Context, configID uint, batchSize int, filters map[string]string) (*ManualSyncResult, error) {
	var cfg models.CozeSyncConfig
	if err := d.db.WithContext(ctx).First(&cfg, configID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("config %d: %w", configID, ErrConfigNotFound)
		}
		return nil, err
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("sync config %d is disabled", configID)
	}
	if cfg.InsertWorkflowID == "" {
		return nil, fmt.Errorf("sync config %d has no insert workflow", configID)
	}

	table, err := d.registry.Table(cfg.SourceTable)
	if err != nil {
		return nil, err
	}
	for field := range filters {
		if !table.HasColumn(field) {
			return nil, fmt.Errorf("table %q has no column %q", table.Name, field)
		}
	}

	if batchSize <= 0 || batchSize > 500 {
		batchSize = 100
	}

	result := &ManualSyncResult{
		BatchID:  uuid.NewString(),
		ConfigID: cfg.ID,
	}

	offset := 0
	for {
		rows, err := d.fetchRows(ctx, table, filters, batchSize, offset)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			recordID := rowID(row)
			sendErr := d.deliver(ctx, &cfg, models.SyncOpInsert, models.SyncTriggerManual, cfg.InsertWorkflowID, row)

			rr := RowResult{RecordID: recordID, Success: sendErr == nil}
			if sendErr != nil {
				rr.Error = sendErr.Error()
				result.Failed++
			} else {
				result.Succeeded++
			}
			result.Total++
			result.Rows = append(result.Rows, rr)
		}

		if len(rows) < batchSize {
			break
		}
		offset += batchSize
	}

	log.Printf("🔄 [COZE] Manual sync %s for config %d: %d total, %d ok, %d failed",
		result.BatchID, cfg.ID, result.Total, result.Succeeded, result.Failed)
	return result, nil
}

// Preview returns up to limit rows of a table shaped exactly as the sync would
// send them. Pure read: no workflow call, no counter change.
func (d *Dispatcher) Preview(ctx context.Context, tableName string, fields []string, limit int) ([]map[string]interface{}, error) {
	table, err := d.registry.Table(tableName)
	if err != nil {
		return nil, err
	}
	if err := d.registry.ValidateFields(tableName, fields); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := d.fetchRows(ctx, table, nil, limit, 0)
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return rows, nil
	}
	shaped := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		shaped = append(shaped, pickFields(row, fields))
	}
	return shaped, nil
}

func (d *Dispatcher) fetchRows(ctx context.Context, table *schema.Table, filters map[string]string, limit, offset int) ([]map[string]interface{}, error) {
	q := d.db.WithContext(ctx).Table(table.Name)
	if table.SoftDelete {
		q = q.Where("deleted_at IS NULL")
	}
	for field, value := range filters {
		q = q.Where(fmt.Sprintf("%s = ?", field), value)
	}

	var rows []map[string]interface{}
	err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// loadRow fetches a single row as a column map, ignoring soft-delete scoping
// so delete payloads still resolve.
func (d *Dispatcher) loadRow(ctx context.Context, table string, recordID uint) (map[string]interface{}, error) {
	if _, err := d.registry.Table(table); err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	err := d.db.WithContext(ctx).Table(table).Where("id = ?", recordID).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("row %d not found in %s", recordID, table)
	}
	return rows[0], nil
}

func (d *Dispatcher) filterFields(cfg *models.CozeSyncConfig, payload map[string]interface{}) map[string]interface{} {
	var fields []string
	if len(cfg.SelectedFields) > 0 {
		if err := json.Unmarshal(cfg.SelectedFields, &fields); err != nil {
			log.Printf("⚠️ [COZE] Config %d has malformed selected_fields, sending all columns", cfg.ID)
		}
	}
	if len(fields) == 0 {
		return payload
	}
	return pickFields(payload, fields)
}

func pickFields(row map[string]interface{}, fields []string) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if v, ok := row[f]; ok {
			out[f] = v
		}
	}
	return out
}

func rowID(row map[string]interface{}) uint {
	switch v := row["id"].(type) {
	case int64:
		return uint(v)
	case int:
		return uint(v)
	case uint:
		return v
	case float64:
		return uint(v)
	}
	return 0
}
