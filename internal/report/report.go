package report

import (
	"context"
	"fmt"

	"github.com/johnwards/shopdb/internal/seed"
	"github.com/johnwards/shopdb/internal/store"
)

// Table is one report result: ordered columns and rows of values.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]any
}

// Records returns each row as a column label to value mapping.
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}

// Query is a named report that can be built from a ReportStore.
type Query struct {
	Name  string
	Title string
	Build func(ctx context.Context, s store.ReportStore) (*Table, error)
}

// Queries lists the reports in the order they are printed.
var Queries = []Query{
	{
		Name:  "client_totals",
		Title: "Список клиентов с общей суммой их покупок",
		Build: ClientTotals,
	},
	{
		Name:  "phone_buyers",
		Title: "Список клиентов, которые купили телефон",
		Build: PhoneBuyers,
	},
	{
		Name:  "product_order_counts",
		Title: "Список товаров с количеством их заказов",
		Build: ProductOrderCounts,
	},
}

// Run builds the report and stamps it with the query title.
func (q Query) Run(ctx context.Context, s store.ReportStore) (*Table, error) {
	t, err := q.Build(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", q.Name, err)
	}
	t.Title = q.Title
	return t, nil
}

// ClientTotals builds the per-client purchase total report.
func ClientTotals(ctx context.Context, s store.ReportStore) (*Table, error) {
	totals, err := s.ClientTotals(ctx)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{store.LabelClient, store.LabelTotal}}
	for _, ct := range totals {
		t.Rows = append(t.Rows, []any{ct.Client, ct.Total})
	}
	return t, nil
}

// PhoneBuyers builds the report of clients who ordered a phone.
func PhoneBuyers(ctx context.Context, s store.ReportStore) (*Table, error) {
	names, err := s.ClientsWhoBought(ctx, seed.PhoneProduct)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{store.LabelClient}}
	for _, name := range names {
		t.Rows = append(t.Rows, []any{name})
	}
	return t, nil
}

// ProductOrderCounts builds the per-product order count report.
func ProductOrderCounts(ctx context.Context, s store.ReportStore) (*Table, error) {
	counts, err := s.ProductOrderCounts(ctx)
	if err != nil {
		return nil, err
	}
	t := &Table{Columns: []string{store.LabelProduct, store.LabelOrderCount}}
	for _, pc := range counts {
		t.Rows = append(t.Rows, []any{pc.Product, pc.Orders})
	}
	return t, nil
}
