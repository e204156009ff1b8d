package schema

import (
	"strings"
	"testing"
)

func TestTableLookup(t *testing.T) {
	r := NewRegistry()

	tbl, err := r.Table("products")
	if err != nil {
		t.Fatalf("lookup products: %v", err)
	}
	if !tbl.SoftDelete {
		t.Error("products should be soft-deleted")
	}
	if !tbl.HasColumn("sku") || tbl.HasColumn("password_hash") {
		t.Error("unexpected column set for products")
	}

	// Lookup is forgiving about case and whitespace.
	if _, err := r.Table("  Products "); err != nil {
		t.Errorf("normalized lookup failed: %v", err)
	}

	if _, err := r.Table("users"); err == nil {
		t.Error("users must not be queryable")
	}
	if _, err := r.Table("operation_logs"); err == nil {
		t.Error("operation_logs must not be queryable")
	}
}

func TestValidateFields(t *testing.T) {
	r := NewRegistry()

	if err := r.ValidateFields("products", nil); err != nil {
		t.Errorf("empty selection should mean all columns: %v", err)
	}
	if err := r.ValidateFields("products", []string{"id", "sku", "current_quantity"}); err != nil {
		t.Errorf("valid selection rejected: %v", err)
	}
	if err := r.ValidateFields("products", []string{"sku", "nope"}); err == nil {
		t.Error("unknown column accepted")
	}
	if err := r.ValidateFields("no_such_table", []string{"id"}); err == nil {
		t.Error("unknown table accepted")
	}
}

func TestTableNamesCoverBusinessSurface(t *testing.T) {
	r := NewRegistry()
	names := r.TableNames()

	want := []string{
		"customers", "inventory_records", "product_categories", "product_models",
		"products", "purchase_order_items", "purchase_orders",
		"sales_order_items", "sales_orders", "suppliers",
	}
	if len(names) != len(want) {
		t.Fatalf("table names = %v", names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestPromptContext(t *testing.T) {
	ctx := NewRegistry().PromptContext()

	for _, want := range []string{
		"Table products",
		"current_quantity",
		"soft-delete marker",
		"Table inventory_records",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("prompt context missing %q", want)
		}
	}
	// Ledger items carry no soft delete; the marker line must be per-table.
	idx := strings.Index(ctx, "Table inventory_records")
	if strings.Contains(ctx[idx:], "soft-delete marker") {
		t.Error("inventory_records wrongly marked soft-deleted")
	}
}
