package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"inventory-service/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestValidateSQL(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"simple select", "SELECT * FROM products", false},
		{"select with trailing semicolon", "SELECT id FROM products;", false},
		{"lowercase select", "select sku from products where id = 1", false},
		{"cte", "WITH low AS (SELECT * FROM products) SELECT * FROM low", false},
		{"empty", "   ", true},
		{"two statements", "SELECT 1; SELECT 2", true},
		{"insert", "INSERT INTO products (sku) VALUES ('x')", true},
		{"update", "UPDATE products SET name = 'x'", true},
		{"delete", "DELETE FROM products", true},
		{"drop", "DROP TABLE products", true},
		{"truncate", "TRUNCATE products", true},
		{"select hiding an update", "SELECT * FROM products; UPDATE products SET name = 'x'", true},
		{"select with embedded delete keyword", "SELECT * FROM products WHERE id IN (DELETE FROM products RETURNING id)", true},
		{"not a statement", "please show me all products", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSQL(tt.query)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSQL(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
		})
	}
}

func newTestExecutor(t *testing.T, maxRows int) (*Executor, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewExecutor(db, maxRows, 5*time.Second), db
}

func TestExecuteReturnsRows(t *testing.T) {
	e, db := newTestExecutor(t, 100)
	if err := db.Exec(`INSERT INTO products (sku, name, current_quantity, min_quantity, created_at, updated_at)
		VALUES ('A-1', 'Widget', 3, 10, datetime('now'), datetime('now'))`).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	result, err := e.Execute(context.Background(), "SELECT sku, current_quantity FROM products WHERE deleted_at IS NULL")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.RowCount != 1 {
		t.Fatalf("rows = %d, want 1", result.RowCount)
	}
	if result.Rows[0][0] != "A-1" || result.Rows[0][1] != "3" {
		t.Errorf("row = %v", result.Rows[0])
	}
}

func TestExecuteRejectsWrites(t *testing.T) {
	e, db := newTestExecutor(t, 100)
	if err := db.Exec(`INSERT INTO products (sku, name, created_at, updated_at)
		VALUES ('A-1', 'Widget', datetime('now'), datetime('now'))`).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := e.Execute(context.Background(), "DELETE FROM products"); err == nil {
		t.Fatal("delete was executed")
	}

	var count int64
	if err := db.Table("products").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("row count after rejected delete = %d, want 1", count)
	}
}

func TestExecuteCapsRows(t *testing.T) {
	e, db := newTestExecutor(t, 3)
	for i := 0; i < 5; i++ {
		if err := db.Exec(`INSERT INTO products (sku, name, created_at, updated_at)
			VALUES ('S-' || ?, 'Widget', datetime('now'), datetime('now'))`, i).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	result, err := e.Execute(context.Background(), "SELECT sku FROM products ORDER BY id")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.RowCount != 3 || !result.Capped {
		t.Errorf("rowCount=%d capped=%v, want 3/true", result.RowCount, result.Capped)
	}
	if !strings.Contains(result.FormatText(), "(truncated)") {
		t.Error("truncation not surfaced in rendered text")
	}
}

func TestExecuteSurfacesDatabaseErrors(t *testing.T) {
	e, _ := newTestExecutor(t, 100)
	if _, err := e.Execute(context.Background(), "SELECT nope FROM no_such_table"); err == nil {
		t.Fatal("expected database error")
	}
}

func TestFormatText(t *testing.T) {
	empty := &QueryResult{Columns: []string{"sku"}}
	if got := empty.FormatText(); got != "Query returned no rows." {
		t.Errorf("empty render = %q", got)
	}

	r := &QueryResult{
		Columns:  []string{"sku", "qty"},
		Rows:     [][]string{{"A-1", "3"}, {"LONG-SKU-42", "120"}},
		RowCount: 2,
	}
	text := r.FormatText()

	lines := strings.Split(text, "\n")
	if len(lines) < 4 {
		t.Fatalf("unexpected layout:\n%s", text)
	}
	if !strings.HasPrefix(lines[0], "sku") || !strings.Contains(lines[0], "qty") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "-+-") {
		t.Errorf("separator = %q", lines[1])
	}
	if !strings.Contains(text, "2 row(s)") {
		t.Errorf("row count missing:\n%s", text)
	}
	// Columns align: every data row is as wide as the widest cell.
	if len(lines[2]) != len(lines[3]) {
		t.Errorf("rows not aligned: %q vs %q", lines[2], lines[3])
	}
}
