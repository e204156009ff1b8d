// internal/schema/registry.go
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Column describes one queryable database column.
type Column struct {
	Name        string
	Type        string
	Description string
}

// Table describes one queryable business table.
type Table struct {
	Name        string
	Description string
	SoftDelete  bool
	Columns     []Column
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// HasColumn reports whether the table declares a column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Registry enumerates the tables the smart assistant may query and the Coze
// sync feature may mirror. Generated SQL and sync field selections are
// validated against it, so the registry is the single source of truth for the
// externally visible schema surface.
type Registry struct {
	tables []Table
	byName map[string]*Table
}

func NewRegistry() *Registry {
	r := &Registry{
		tables: businessTables(),
		byName: make(map[string]*Table),
	}
	for i := range r.tables {
		r.byName[r.tables[i].Name] = &r.tables[i]
	}
	return r
}

// Table looks up a table by name.
func (r *Registry) Table(name string) (*Table, error) {
	t, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	return t, nil
}

// TableNames returns all registered table names, sorted.
func (r *Registry) TableNames() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateFields checks a field selection against a table. An empty selection
// is valid and means "all columns".
func (r *Registry) ValidateFields(table string, fields []string) error {
	t, err := r.Table(table)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if !t.HasColumn(f) {
			return fmt.Errorf("table %q has no column %q", t.Name, f)
		}
	}
	return nil
}

// PromptContext renders the schema as plain text for the LLM prompt.
func (r *Registry) PromptContext() string {
	var b strings.Builder
	for _, t := range r.tables {
		fmt.Fprintf(&b, "Table %s — %s\n", t.Name, t.Description)
		for _, c := range t.Columns {
			fmt.Fprintf(&b, "  %s (%s): %s\n", c.Name, c.Type, c.Description)
		}
		if t.SoftDelete {
			b.WriteString("  deleted_at (timestamp): soft-delete marker, non-NULL means the row is deleted\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func businessTables() []Table {
	return []Table{
		{
			Name:        "products",
			Description: "inventory products",
			SoftDelete:  true,
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"sku", "varchar", "unique stock keeping unit"},
				{"name", "varchar", "product name"},
				{"category_id", "integer", "FK to product_categories.id"},
				{"model_id", "integer", "FK to product_models.id"},
				{"supplier_id", "integer", "FK to suppliers.id"},
				{"unit", "varchar", "unit of measure"},
				{"purchase_price", "numeric", "buy-in price per unit"},
				{"sale_price", "numeric", "sale price per unit"},
				{"current_quantity", "integer", "stock on hand"},
				{"min_quantity", "integer", "low-stock threshold"},
				{"remark", "text", "free-form note"},
				{"created_at", "timestamp", "creation time"},
				{"updated_at", "timestamp", "last update time"},
			},
		},
		{
			Name:        "product_categories",
			Description: "product categories",
			SoftDelete:  true,
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"name", "varchar", "category name"},
				{"description", "text", "description"},
				{"created_at", "timestamp", "creation time"},
			},
		},
		{
			Name:        "product_models",
			Description: "product models / specifications",
			SoftDelete:  true,
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"name", "varchar", "model name"},
				{"category_id", "integer", "FK to product_categories.id"},
				{"specification", "text", "technical specification"},
				{"created_at", "timestamp", "creation time"},
			},
		},
		{
			Name:        "suppliers",
			Description: "suppliers we purchase from",
			SoftDelete:  true,
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"name", "varchar", "supplier name"},
				{"contact_person", "varchar", "contact person"},
				{"phone", "varchar", "phone number"},
				{"email", "varchar", "email address"},
				{"address", "varchar", "postal address"},
				{"created_at", "timestamp", "creation time"},
			},
		},
		{
			Name:        "customers",
			Description: "customers we sell to",
			SoftDelete:  true,
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"name", "varchar", "customer name"},
				{"contact_person", "varchar", "contact person"},
				{"phone", "varchar", "phone number"},
				{"email", "varchar", "email address"},
				{"address", "varchar", "postal address"},
				{"created_at", "timestamp", "creation time"},
			},
		},
		{
			Name:        "purchase_orders",
			Description: "purchase orders (stock in on completion)",
			SoftDelete:  true,
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"order_no", "varchar", "unique order number"},
				{"supplier_id", "integer", "FK to suppliers.id"},
				{"status", "varchar", "pending / completed / cancelled"},
				{"total_amount", "numeric", "order total"},
				{"completed_at", "timestamp", "completion time"},
				{"created_at", "timestamp", "creation time"},
			},
		},
		{
			Name:        "purchase_order_items",
			Description: "purchase order line items",
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"order_id", "integer", "FK to purchase_orders.id"},
				{"product_id", "integer", "FK to products.id"},
				{"quantity", "integer", "ordered quantity"},
				{"unit_price", "numeric", "unit price"},
				{"subtotal", "numeric", "line subtotal"},
			},
		},
		{
			Name:        "sales_orders",
			Description: "sales orders (stock out on completion)",
			SoftDelete:  true,
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"order_no", "varchar", "unique order number"},
				{"customer_id", "integer", "FK to customers.id"},
				{"status", "varchar", "pending / completed / cancelled"},
				{"total_amount", "numeric", "order total"},
				{"completed_at", "timestamp", "completion time"},
				{"created_at", "timestamp", "creation time"},
			},
		},
		{
			Name:        "sales_order_items",
			Description: "sales order line items",
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"order_id", "integer", "FK to sales_orders.id"},
				{"product_id", "integer", "FK to products.id"},
				{"quantity", "integer", "ordered quantity"},
				{"unit_price", "numeric", "unit price"},
				{"subtotal", "numeric", "line subtotal"},
			},
		},
		{
			Name:        "inventory_records",
			Description: "append-only stock ledger",
			Columns: []Column{
				{"id", "integer", "primary key"},
				{"product_id", "integer", "FK to products.id"},
				{"change_type", "varchar", "in / out / adjust"},
				{"quantity", "integer", "signed delta"},
				{"quantity_before", "integer", "stock before the change"},
				{"quantity_after", "integer", "stock after the change"},
				{"source", "varchar", "order number or 'manual'"},
				{"operator", "varchar", "who made the change"},
				{"created_at", "timestamp", "ledger time"},
			},
		},
	}
}
