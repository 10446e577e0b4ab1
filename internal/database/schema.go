package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Table describes one table of the shop schema. Name and Columns are static
// identifiers; they are the only pieces of SQL text ever built at runtime.
type Table struct {
	Name    string
	Columns []string
	Create  string
}

// Clients, Products and Orders make up the whole schema.
var (
	Clients = Table{
		Name:    "Clients",
		Columns: []string{"id", "name"},
		Create: `CREATE TABLE IF NOT EXISTS "Clients" (
			id INTEGER PRIMARY KEY,
			name TEXT
		)`,
	}

	Products = Table{
		Name:    "Products",
		Columns: []string{"id", "name", "price"},
		Create: `CREATE TABLE IF NOT EXISTS "Products" (
			id INTEGER PRIMARY KEY,
			name TEXT,
			price REAL
		)`,
	}

	Orders = Table{
		Name:    "Orders",
		Columns: []string{"id", "client_id", "product_id", "label"},
		Create: `CREATE TABLE IF NOT EXISTS "Orders" (
			id INTEGER PRIMARY KEY,
			client_id INTEGER,
			product_id INTEGER,
			label TEXT,
			FOREIGN KEY (client_id) REFERENCES "Clients"(id),
			FOREIGN KEY (product_id) REFERENCES "Products"(id)
		)`,
	}
)

// Tables lists the schema in creation order. Drop in reverse.
var Tables = []Table{Clients, Products, Orders}

// QuotedName returns the table name as a quoted SQL identifier.
func (t Table) QuotedName() string {
	return quoteIdent(t.Name)
}

// InsertSQL returns a parameterised INSERT covering every column of t.
func (t Table) InsertSQL() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		t.QuotedName(), strings.Join(t.Columns, ", "), placeholders)
}

// Step names a per-table schema operation.
type Step string

const (
	StepDrop   Step = "drop"
	StepCreate Step = "create"
)

// StepFunc observes the outcome of one per-table step. Returning nil lets
// the loop continue past err; returning an error stops it. A nil StepFunc
// stops at the first error.
type StepFunc func(step Step, t Table, err error) error

func (fn StepFunc) observe(step Step, t Table, err error) error {
	if fn == nil {
		return err
	}
	return fn(step, t, err)
}

// CreateTable creates t if it does not exist yet.
func CreateTable(ctx context.Context, db *sql.DB, t Table) error {
	if _, err := db.ExecContext(ctx, t.Create); err != nil {
		return fmt.Errorf("create table %s: %w", t.Name, err)
	}
	return nil
}

// CreateTables creates every table of the schema. Running it again is a no-op.
func CreateTables(ctx context.Context, db *sql.DB, each StepFunc) error {
	for _, t := range Tables {
		if err := each.observe(StepCreate, t, CreateTable(ctx, db, t)); err != nil {
			return err
		}
	}
	return nil
}

// DropTable drops the named table. A missing table is not an error.
func DropTable(ctx context.Context, db *sql.DB, name string) error {
	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil { //nolint:gosec // identifier is quoted
		return fmt.Errorf("drop table %s: %w", name, err)
	}
	return nil
}

// DropTables drops the schema in foreign-key-safe order.
func DropTables(ctx context.Context, db *sql.DB, each StepFunc) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		t := Tables[i]
		if err := each.observe(StepDrop, t, DropTable(ctx, db, t.Name)); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops and recreates the schema, leaving every table empty. each sees
// every drop step followed by every create step.
func Reset(ctx context.Context, db *sql.DB, each StepFunc) error {
	if err := DropTables(ctx, db, each); err != nil {
		return err
	}
	return CreateTables(ctx, db, each)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
