package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/shopdb/internal/database"
)

// Fill inserts rows into t in a single transaction using one prepared
// statement. Each row must hold one value per column of t, in column order.
// On any failure the whole batch is rolled back.
func Fill(ctx context.Context, db *sql.DB, t database.Table, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fill %s: %w", t.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, t.InsertSQL())
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert %s: %w", t.Name, err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range rows {
		if len(row) != len(t.Columns) {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s row %d: got %d values, want %d", t.Name, i, len(row), len(t.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s row %d: %w", t.Name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fill %s: %w", t.Name, err)
	}
	return nil
}
