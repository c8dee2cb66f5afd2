package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rana718/sqlforge/internal/database"
	"github.com/Rana718/sqlforge/internal/database/common"
	"github.com/Rana718/sqlforge/internal/types"
	"github.com/fatih/color"
)

type Seeder struct {
	adapter   database.DatabaseAdapter
	generator *DataGenerator
	graph     *DependencyGraph
	tables    map[string]types.SchemaTable
	cfg       SeedConfig
}

// NewSeeder uses an already connected adapter. The caller keeps ownership of it.
func NewSeeder(adapter database.DatabaseAdapter, cfg SeedConfig) *Seeder {
	return &Seeder{
		adapter:   adapter,
		generator: NewDataGenerator(cfg.RandomSeed),
		graph:     NewDependencyGraph(),
		tables:    make(map[string]types.SchemaTable),
		cfg:       cfg,
	}
}

// Seed rebuilds the CRM tables and fills them. Existing rows are discarded.
func (s *Seeder) Seed(ctx context.Context) (*SeedStats, error) {
	if s.cfg.Customers < 0 {
		return nil, fmt.Errorf("customer count cannot be negative: %d", s.cfg.Customers)
	}

	color.Cyan("🌱 Starting database seeding...")

	for _, table := range Tables() {
		if err := common.ValidateIdentifier(table.Name); err != nil {
			return nil, fmt.Errorf("invalid table name: %w", err)
		}
		for _, col := range table.Columns {
			if err := common.ValidateIdentifier(col.Name); err != nil {
				return nil, fmt.Errorf("invalid column name in table %s: %w", table.Name, err)
			}
		}
		s.tables[table.Name] = table
		s.graph.AddTable(table)
	}

	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}
	color.Cyan("📋 Insertion order: %s", strings.Join(order, " → "))

	if err := s.recreateTables(ctx, order); err != nil {
		return nil, err
	}

	tx, err := s.adapter.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stats, err := s.insertRows(ctx, tx)
	if err != nil {
		color.Yellow("🔄 Rolling back transaction due to error...")
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("seed failed and rollback failed: %v (original: %w)", rbErr, err)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	color.Green("✅ Database seeded: %d customers, %d subscriptions, %d support tickets",
		stats.Customers, stats.Subscriptions, stats.Tickets)
	return stats, nil
}

func (s *Seeder) recreateTables(ctx context.Context, order []string) error {
	for _, name := range s.graph.DropOrder() {
		if err := s.adapter.DropTable(ctx, name); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}

	var ddl []string
	for _, name := range order {
		ddl = append(ddl, s.adapter.GenerateCreateTableSQL(s.tables[name]))
	}

	if err := s.adapter.ExecuteMigration(ctx, strings.Join(ddl, ";\n\n")+";"); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	color.Green("📊 Created %d tables", len(order))
	return nil
}

// insertRows writes every customer with its subscription and tickets.
// Nothing outside tx may touch the database until it finishes.
func (s *Seeder) insertRows(ctx context.Context, tx *sql.Tx) (*SeedStats, error) {
	qb := s.adapter.Builder()
	stats := &SeedStats{}

	for i := 1; i <= s.cfg.Customers; i++ {
		customerID, err := s.adapter.InsertReturningID(ctx, tx,
			qb.Insert(TableCustomers).
				Columns("name", "industry", "signup_date").
				Values(s.generator.CompanyName(i), s.generator.Industry(), s.generator.SignupDate()),
			"customer_id")
		if err != nil {
			return nil, fmt.Errorf("failed to insert customer %d: %w", i, err)
		}
		stats.Customers++

		plan := s.generator.Plan()
		if _, err := s.adapter.InsertReturningID(ctx, tx,
			qb.Insert(TableSubscriptions).
				Columns("customer_id", "plan_tier", "monthly_revenue", "status").
				Values(customerID, plan.Tier, plan.MonthlyRevenue, s.generator.Status()),
			"sub_id"); err != nil {
			return nil, fmt.Errorf("failed to insert subscription for customer %d: %w", customerID, err)
		}
		stats.Subscriptions++

		for t := s.generator.TicketCount(); t > 0; t-- {
			if _, err := s.adapter.InsertReturningID(ctx, tx,
				qb.Insert(TableSupportTickets).
					Columns("customer_id", "issue_type", "priority", "resolved_in_hours").
					Values(customerID, DefaultIssueType, s.generator.Priority(), s.generator.ResolutionHours()),
				"ticket_id"); err != nil {
				return nil, fmt.Errorf("failed to insert ticket for customer %d: %w", customerID, err)
			}
			stats.Tickets++
		}
	}

	return stats, nil
}
