package seeder

import "github.com/Rana718/sqlforge/internal/types"

const (
	TableCustomers      = "customers"
	TableSubscriptions  = "subscriptions"
	TableSupportTickets = "support_tickets"
)

func customerRef() (string, string) {
	return TableCustomers, "customer_id"
}

// Tables is the fixed CRM schema.
func Tables() []types.SchemaTable {
	fkTable, fkColumn := customerRef()

	return []types.SchemaTable{
		{
			Name: TableCustomers,
			Columns: []types.SchemaColumn{
				{Name: "customer_id", Type: "INTEGER", IsPrimary: true, IsAutoIncrement: true},
				{Name: "name", Type: "TEXT", Nullable: true},
				{Name: "industry", Type: "TEXT", Nullable: true},
				{Name: "signup_date", Type: "DATE", Nullable: true},
			},
		},
		{
			Name: TableSubscriptions,
			Columns: []types.SchemaColumn{
				{Name: "sub_id", Type: "INTEGER", IsPrimary: true, IsAutoIncrement: true},
				{Name: "customer_id", Type: "INTEGER", Nullable: true, ForeignKeyTable: fkTable, ForeignKeyColumn: fkColumn},
				{Name: "plan_tier", Type: "TEXT", Nullable: true, CheckValues: planTiers()},
				{Name: "monthly_revenue", Type: "REAL", Nullable: true},
				{Name: "status", Type: "TEXT", Nullable: true, CheckValues: Statuses},
			},
		},
		{
			Name: TableSupportTickets,
			Columns: []types.SchemaColumn{
				{Name: "ticket_id", Type: "INTEGER", IsPrimary: true, IsAutoIncrement: true},
				{Name: "customer_id", Type: "INTEGER", Nullable: true, ForeignKeyTable: fkTable, ForeignKeyColumn: fkColumn},
				{Name: "issue_type", Type: "TEXT", Nullable: true},
				{Name: "priority", Type: "TEXT", Nullable: true, CheckValues: Priorities},
				{Name: "resolved_in_hours", Type: "INTEGER", Nullable: true},
			},
		},
	}
}
