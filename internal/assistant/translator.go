package assistant

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"inventory-service/internal/llm"
	"inventory-service/internal/schema"
)

// Translation is the parsed output of one NL-to-SQL call.
type Translation struct {
	SQL         string
	Explanation string
}

// Translator turns a free-text question into a SELECT statement by prompting
// the LLM with the schema registry. Single attempt, no caching — each call is
// independent.
type Translator struct {
	llm      *llm.Client
	registry *schema.Registry
}

func NewTranslator(client *llm.Client, registry *schema.Registry) *Translator {
	return &Translator{llm: client, registry: registry}
}

func (t *Translator) Translate(ctx context.Context, question string) (*Translation, error) {
	prompt := t.buildPrompt(question)

	content, err := t.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm call failed: %w", err)
	}

	sql, explanation, err := extractSQL(content)
	if err != nil {
		log.Printf("⚠️ [ASSISTANT] No SQL found in LLM reply (%d bytes)", len(content))
		return nil, err
	}

	return &Translation{SQL: sql, Explanation: explanation}, nil
}

func (t *Translator) buildPrompt(question string) string {
	return fmt.Sprintf(`You are a PostgreSQL analyst for an inventory management system.
Translate the user's question into ONE read-only SQL query against this schema:

%s
### RULES
- Output exactly one SELECT statement inside a fenced sql code block, followed by a one-paragraph plain-text explanation.
- Never write INSERT, UPDATE, DELETE, DROP or any other statement that modifies data.
- Use only the table and column names listed above, exactly as written.
- Tables with a deleted_at column use soft deletes: always add "deleted_at IS NULL" for them.
- Limit results to 100 rows unless the question asks for an aggregate.

### EXAMPLES

Question: which products are below their minimum stock level?
`+"```sql"+`
SELECT sku, name, current_quantity, min_quantity FROM products WHERE deleted_at IS NULL AND current_quantity < min_quantity ORDER BY current_quantity ASC LIMIT 100;
`+"```"+`
Lists all live products whose stock on hand is under the low-stock threshold.

Question: total sales amount per customer this month?
`+"```sql"+`
SELECT c.name, SUM(o.total_amount) AS total FROM sales_orders o JOIN customers c ON c.id = o.customer_id WHERE o.deleted_at IS NULL AND c.deleted_at IS NULL AND o.status = 'completed' AND o.created_at >= date_trunc('month', now()) GROUP BY c.name ORDER BY total DESC;
`+"```"+`
Sums completed sales orders per customer since the start of the current month.

### QUESTION

%s`, t.registry.PromptContext(), question)
}

var (
	fencedSQLRe = regexp.MustCompile("(?s)```(?:sql)?\\s*(.+?)```")
	bareSQLRe   = regexp.MustCompile(`(?is)\bSELECT\b.*`)
)

// extractSQL pulls the SQL statement and surrounding explanation out of the
// model's free-text reply. Best effort: first fenced code block wins, then the
// first SELECT occurrence. No SQL substring at all is a hard failure — we
// never guess.
func extractSQL(content string) (string, string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", fmt.Errorf("empty reply from model")
	}

	if m := fencedSQLRe.FindStringSubmatchIndex(content); m != nil {
		sql := strings.TrimSpace(content[m[2]:m[3]])
		if sql != "" {
			explanation := strings.TrimSpace(content[:m[0]] + " " + content[m[1]:])
			return sql, explanation, nil
		}
	}

	if m := bareSQLRe.FindStringIndex(content); m != nil {
		rest := content[m[0]:]
		// cut at the first semicolon if present, otherwise take the remainder
		if i := strings.Index(rest, ";"); i >= 0 {
			rest = rest[:i+1]
		}
		explanation := strings.TrimSpace(content[:m[0]])
		return strings.TrimSpace(rest), explanation, nil
	}

	return "", "", fmt.Errorf("no SQL statement found in model reply")
}
