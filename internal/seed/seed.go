package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/shopdb/internal/database"
)

// Batch pairs a table with the rows to load into it.
type Batch struct {
	Table database.Table
	Rows  [][]any
}

// Batches returns the seed data grouped per table. Call order matters:
// clients and products before the orders that reference them.
func Batches() []Batch {
	return []Batch{
		{Table: database.Clients, Rows: clientRows(defaultClients)},
		{Table: database.Products, Rows: productRows(defaultProducts)},
		{Table: database.Orders, Rows: orderRows(defaultOrders)},
	}
}

// FillFunc observes the outcome of filling one batch. Returning nil lets
// seeding continue past err; returning an error stops it.
type FillFunc func(b Batch, err error) error

// Seed inserts all seed data into freshly created tables. It is not
// idempotent: primary keys collide if the tables already hold the seed rows,
// so callers reset the schema first. A nil each stops at the first error.
func Seed(ctx context.Context, db *sql.DB, each FillFunc) error {
	for _, b := range Batches() {
		err := Fill(ctx, db, b.Table, b.Rows)
		if each != nil {
			err = each(b, err)
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", b.Table.Name, err)
		}
	}
	return nil
}
