package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/shopdb/internal/database"
	"github.com/johnwards/shopdb/internal/domain"
)

// CatalogStore reads the seeded tables back row by row.
type CatalogStore interface {
	Clients(ctx context.Context) ([]domain.Client, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Count(ctx context.Context, t database.Table) (int, error)
}

// SQLiteCatalogStore implements CatalogStore backed by SQLite.
type SQLiteCatalogStore struct {
	db *sql.DB
}

// NewSQLiteCatalogStore creates a new SQLiteCatalogStore.
func NewSQLiteCatalogStore(db *sql.DB) *SQLiteCatalogStore {
	return &SQLiteCatalogStore{db: db}
}

// Clients returns all clients ordered by id.
func (s *SQLiteCatalogStore) Clients(ctx context.Context) ([]domain.Client, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM "Clients" ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list clients: %w", ErrQuery, err)
	}
	defer func() { _ = rows.Close() }()

	clients := []domain.Client{}
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: scan client: %w", ErrQuery, err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list clients: %w", ErrQuery, err)
	}
	return clients, nil
}

// Products returns all products ordered by id.
func (s *SQLiteCatalogStore) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, price FROM "Products" ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", ErrQuery, err)
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("%w: scan product: %w", ErrQuery, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list products: %w", ErrQuery, err)
	}
	return products, nil
}

// Orders returns all orders ordered by id.
func (s *SQLiteCatalogStore) Orders(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, client_id, product_id, label FROM "Orders" ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", ErrQuery, err)
	}
	defer func() { _ = rows.Close() }()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.ProductID, &o.Label); err != nil {
			return nil, fmt.Errorf("%w: scan order: %w", ErrQuery, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", ErrQuery, err)
	}
	return orders, nil
}

// Count returns the number of rows in t.
func (s *SQLiteCatalogStore) Count(ctx context.Context, t database.Table) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.QuotedName()).Scan(&n); err != nil { //nolint:gosec // identifier is quoted
		return 0, fmt.Errorf("%w: count %s: %w", ErrQuery, t.Name, err)
	}
	return n, nil
}
