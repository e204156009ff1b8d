package service

import (
	"context"
	"errors"
	"testing"

	"inventory-service/internal/schema"
	"inventory-service/pkg/models"
)

func newCozeSyncService(t *testing.T) *CozeSyncService {
	t.Helper()
	return NewCozeSyncService(newTestDB(t), nil, schema.NewRegistry())
}

func TestCozeSyncCreateDefaults(t *testing.T) {
	s := newCozeSyncService(t)

	cfg, err := s.Create(context.Background(), &models.CozeSyncConfigRequest{
		Name:             "products to coze",
		SourceTable:      "products",
		SelectedFields:   []string{"id", "sku", "current_quantity"},
		InsertWorkflowID: "wf-1",
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !cfg.Enabled || cfg.Status != models.SyncStatusActive {
		t.Errorf("new config state: enabled=%v status=%q", cfg.Enabled, cfg.Status)
	}
	if !cfg.SyncOnInsert || !cfg.SyncOnUpdate || cfg.SyncOnDelete {
		t.Errorf("op defaults: insert=%v update=%v delete=%v, want true/true/false",
			cfg.SyncOnInsert, cfg.SyncOnUpdate, cfg.SyncOnDelete)
	}
	if cfg.TotalSyncCount != 0 {
		t.Errorf("fresh config has counters: %d", cfg.TotalSyncCount)
	}
}

func TestCozeSyncCreateDisabledPersists(t *testing.T) {
	db := newTestDB(t)
	s := NewCozeSyncService(db, nil, schema.NewRegistry())

	off := false
	cfg, err := s.Create(context.Background(), &models.CozeSyncConfigRequest{
		Name:             "disabled from birth",
		SourceTable:      "products",
		InsertWorkflowID: "wf-1",
		Enabled:          &off,
		SyncOnInsert:     &off,
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var stored models.CozeSyncConfig
	if err := db.First(&stored, cfg.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Enabled {
		t.Error("config created disabled was persisted enabled")
	}
	if stored.SyncOnInsert {
		t.Error("syncOnInsert=false was persisted true")
	}
	if !stored.SyncOnUpdate {
		t.Error("omitted syncOnUpdate should default to true")
	}
}

func TestCozeSyncCreateValidation(t *testing.T) {
	s := newCozeSyncService(t)

	tests := []struct {
		name string
		req  models.CozeSyncConfigRequest
	}{
		{"missing name", models.CozeSyncConfigRequest{SourceTable: "products", InsertWorkflowID: "wf"}},
		{"missing table", models.CozeSyncConfigRequest{Name: "x", InsertWorkflowID: "wf"}},
		{"unknown table", models.CozeSyncConfigRequest{Name: "x", SourceTable: "users", InsertWorkflowID: "wf"}},
		{"unknown field", models.CozeSyncConfigRequest{Name: "x", SourceTable: "products", SelectedFields: []string{"nope"}, InsertWorkflowID: "wf"}},
		{"no workflows", models.CozeSyncConfigRequest{Name: "x", SourceTable: "products"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Create(context.Background(), &tt.req, testOp); !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCozeSyncPauseResume(t *testing.T) {
	s := newCozeSyncService(t)

	cfg, err := s.Create(context.Background(), &models.CozeSyncConfigRequest{
		Name: "pausable", SourceTable: "products", UpdateWorkflowID: "wf-2",
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paused, err := s.Pause(context.Background(), cfg.ID, testOp)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Status != models.SyncStatusPaused {
		t.Errorf("status = %q, want paused", paused.Status)
	}

	resumed, err := s.Resume(context.Background(), cfg.ID, testOp)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Status != models.SyncStatusActive {
		t.Errorf("status = %q, want active", resumed.Status)
	}

	if _, err := s.Pause(context.Background(), 999, testOp); !errors.Is(err, ErrNotFound) {
		t.Errorf("pause missing config = %v, want ErrNotFound", err)
	}
}

func TestCozeSyncUpdatePreservesCounters(t *testing.T) {
	s := newCozeSyncService(t)

	cfg, err := s.Create(context.Background(), &models.CozeSyncConfigRequest{
		Name: "counted", SourceTable: "products", InsertWorkflowID: "wf-1",
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Simulate dispatcher activity, then update through the service.
	cfg.TotalSyncCount = 5
	cfg.SuccessSyncCount = 4
	cfg.FailedSyncCount = 1
	if err := s.db.Save(cfg).Error; err != nil {
		t.Fatalf("save counters: %v", err)
	}

	updated, err := s.Update(context.Background(), cfg.ID, &models.CozeSyncConfigRequest{
		Name: "renamed", SourceTable: "products", InsertWorkflowID: "wf-new",
	}, testOp)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "renamed" || updated.InsertWorkflowID != "wf-new" {
		t.Errorf("fields not updated: %+v", updated)
	}
	if updated.TotalSyncCount != 5 || updated.SuccessSyncCount != 4 || updated.FailedSyncCount != 1 {
		t.Errorf("counters clobbered by update: total=%d success=%d failed=%d",
			updated.TotalSyncCount, updated.SuccessSyncCount, updated.FailedSyncCount)
	}
}
