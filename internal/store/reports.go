package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/shopdb/internal/domain"
)

// Column labels of the report queries. They are part of the printed output.
const (
	LabelClient     = "Клиент"
	LabelTotal      = "Общая сумма покупок"
	LabelProduct    = "Товар"
	LabelOrderCount = "Количество заказов"
)

// ReportStore defines the fixed aggregate queries over orders.
type ReportStore interface {
	ClientTotals(ctx context.Context) ([]domain.ClientTotal, error)
	ClientsWhoBought(ctx context.Context, product string) ([]string, error)
	ProductOrderCounts(ctx context.Context) ([]domain.ProductOrderCount, error)
}

// SQLiteReportStore implements ReportStore backed by SQLite.
type SQLiteReportStore struct {
	db *sql.DB
}

// NewSQLiteReportStore creates a new SQLiteReportStore.
func NewSQLiteReportStore(db *sql.DB) *SQLiteReportStore {
	return &SQLiteReportStore{db: db}
}

const clientTotalsSQL = `
SELECT c.name AS "` + LabelClient + `", SUM(p.price) AS "` + LabelTotal + `"
FROM "Orders" o
JOIN "Clients" c ON o.client_id = c.id
JOIN "Products" p ON o.product_id = p.id
GROUP BY c.name
ORDER BY c.name`

// ClientTotals returns every client that placed at least one order together
// with the summed price of the ordered products.
func (s *SQLiteReportStore) ClientTotals(ctx context.Context) ([]domain.ClientTotal, error) {
	rows, err := s.db.QueryContext(ctx, clientTotalsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: client totals: %w", ErrQuery, err)
	}
	defer func() { _ = rows.Close() }()

	totals := []domain.ClientTotal{}
	for rows.Next() {
		var ct domain.ClientTotal
		if err := rows.Scan(&ct.Client, &ct.Total); err != nil {
			return nil, fmt.Errorf("%w: scan client total: %w", ErrQuery, err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: client totals: %w", ErrQuery, err)
	}
	return totals, nil
}

const clientsWhoBoughtSQL = `
SELECT c.name AS "` + LabelClient + `"
FROM "Orders" o
JOIN "Clients" c ON o.client_id = c.id
JOIN "Products" p ON o.product_id = p.id
WHERE p.name = ?
GROUP BY c.name
ORDER BY c.name`

// ClientsWhoBought returns the distinct names of clients with at least one
// order for the product with exactly the given name.
func (s *SQLiteReportStore) ClientsWhoBought(ctx context.Context, product string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, clientsWhoBoughtSQL, product)
	if err != nil {
		return nil, fmt.Errorf("%w: clients who bought %q: %w", ErrQuery, product, err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan client name: %w", ErrQuery, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: clients who bought %q: %w", ErrQuery, product, err)
	}
	return names, nil
}

const productOrderCountsSQL = `
SELECT p.name AS "` + LabelProduct + `", COUNT(o.id) AS "` + LabelOrderCount + `"
FROM "Orders" o
JOIN "Products" p ON o.product_id = p.id
GROUP BY p.name
ORDER BY p.name`

// ProductOrderCounts returns the number of orders per ordered product.
func (s *SQLiteReportStore) ProductOrderCounts(ctx context.Context) ([]domain.ProductOrderCount, error) {
	rows, err := s.db.QueryContext(ctx, productOrderCountsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: product order counts: %w", ErrQuery, err)
	}
	defer func() { _ = rows.Close() }()

	counts := []domain.ProductOrderCount{}
	for rows.Next() {
		var pc domain.ProductOrderCount
		if err := rows.Scan(&pc.Product, &pc.Orders); err != nil {
			return nil, fmt.Errorf("%w: scan product count: %w", ErrQuery, err)
		}
		counts = append(counts, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: product order counts: %w", ErrQuery, err)
	}
	return counts, nil
}
