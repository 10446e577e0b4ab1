package store

import "database/sql"

// Store holds all sub-stores used by the application.
type Store struct {
	Reports ReportStore
	Catalog CatalogStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		Reports: NewSQLiteReportStore(db),
		Catalog: NewSQLiteCatalogStore(db),
	}
}
