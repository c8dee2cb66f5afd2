package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/schema"
	"github.com/Rana718/sqlforge/internal/seeder"
	"github.com/Rana718/sqlforge/internal/types"
	"github.com/stretchr/testify/require"
)

// seededDB creates a small CRM database and returns a connector to it
// together with its schema summary.
func seededDB(t *testing.T) (database.Connector, string) {
	t.Helper()
	ctx := context.Background()

	url := "sqlite://" + filepath.Join(t.TempDir(), "saas_crm.db")
	adapter, err := database.OpenURL(ctx, "sqlite", url)
	require.NoError(t, err)
	defer adapter.Close()

	_, err = seeder.NewSeeder(adapter, seeder.SeedConfig{Customers: 100, RandomSeed: 3}).Seed(ctx)
	require.NoError(t, err)

	summary, err := schema.Summarize(ctx, adapter)
	require.NoError(t, err)

	return func(ctx context.Context) (database.DatabaseAdapter, error) {
		return database.OpenURL(ctx, "sqlite", url)
	}, summary
}

// mixedBatch holds seven queries that run and three that do not.
var mixedBatch = []types.QueryPair{
	{Question: "How many customers do we have?", SQL: "SELECT COUNT(*) FROM customers"},
	{Question: "Customers per industry", SQL: "SELECT industry, COUNT(*) FROM customers GROUP BY industry"},
	{Question: "Average revenue of active subscriptions", SQL: "SELECT AVG(monthly_revenue) FROM subscriptions WHERE status = 'Active'"},
	{Question: "Revenue per customer", SQL: "SELECT c.name, SUM(s.monthly_revenue) FROM customers c JOIN subscriptions s ON s.customer_id = c.customer_id GROUP BY c.name"},
	{Question: "Resolution time by priority", SQL: "```sql\nSELECT priority, AVG(resolved_in_hours) FROM support_tickets GROUP BY priority\n```"},
	{Question: "Recent signups", SQL: "SELECT name FROM customers WHERE signup_date > '2024-01-01'"},
	{Question: "High priority tickets", SQL: "SELECT COUNT(*) FROM support_tickets WHERE priority = 'High'"},
	{Question: "Revenue per customer row", SQL: "SELECT revenue FROM customers"},
	{Question: "Unpaid invoices", SQL: "SELECT * FROM invoices"},
	{Question: "All names", SQL: "SELEC name FROM customers"},
}
