package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// forbiddenSQLRe matches any write/DDL keyword anywhere in the statement,
// case-insensitive. Applied to every candidate regardless of where it came
// from — translator output is never trusted.
var forbiddenSQLRe = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|TRUNCATE|CREATE|GRANT|REVOKE)\b`)

// ValidateSQL accepts exactly one read-only SELECT (optionally WITH-prefixed)
// statement and rejects everything else.
func ValidateSQL(query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return fmt.Errorf("empty SQL statement")
	}

	q = strings.TrimSuffix(q, ";")
	if strings.Contains(q, ";") {
		return fmt.Errorf("multiple SQL statements are not allowed")
	}

	upper := strings.ToUpper(q)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("only SELECT statements are allowed")
	}

	if m := forbiddenSQLRe.FindString(q); m != "" {
		return fmt.Errorf("forbidden keyword %q in SQL statement", strings.ToUpper(m))
	}

	return nil
}

// QueryResult holds a read-only result set ready for text rendering.
type QueryResult struct {
	Columns  []string
	Rows     [][]string
	RowCount int
	Capped   bool
}

// FormatText renders the result as an aligned text table with a row count, or
// an explicit no-rows message — never an empty table.
func (r *QueryResult) FormatText() string {
	if r.RowCount == 0 {
		return "Query returned no rows."
	}

	widths := make([]int, len(r.Columns))
	for i, c := range r.Columns {
		widths[i] = len(c)
	}
	for _, row := range r.Rows {
		for i, v := range row {
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, v := range cells {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(v)
			b.WriteString(strings.Repeat(" ", widths[i]-len(v)))
		}
		b.WriteString("\n")
	}

	writeRow(r.Columns)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("-+-")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range r.Rows {
		writeRow(row)
	}

	fmt.Fprintf(&b, "\n%d row(s)", r.RowCount)
	if r.Capped {
		b.WriteString(" (truncated)")
	}
	return b.String()
}

// Executor runs validated SELECT statements against the business database
// with a row cap and a per-query timeout.
type Executor struct {
	db      *gorm.DB
	maxRows int
	timeout time.Duration
}

func NewExecutor(db *gorm.DB, maxRows int, timeout time.Duration) *Executor {
	if maxRows <= 0 {
		maxRows = 100
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Executor{db: db, maxRows: maxRows, timeout: timeout}
}

// Execute validates and runs the query. Database errors are returned verbatim
// so the caller can surface them; nothing is retried.
func (e *Executor) Execute(ctx context.Context, query string) (*QueryResult, error) {
	if err := ValidateSQL(query); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := e.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Columns: cols}
	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if result.RowCount >= e.maxRows {
			result.Capped = true
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = renderValue(v)
		}
		result.Rows = append(result.Rows, row)
		result.RowCount++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func renderValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}
