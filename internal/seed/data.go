package seed

import "github.com/johnwards/shopdb/internal/domain"

// PhoneProduct is the product name the buyers report filters on.
const PhoneProduct = "Телефон"

var defaultClients = []domain.Client{
	{ID: 1, Name: "Иван"},
	{ID: 2, Name: "Константин"},
	{ID: 3, Name: "Дмитрий"},
	{ID: 4, Name: "Александр"},
}

var defaultProducts = []domain.Product{
	{ID: 1, Name: "Мяч", Price: 299.99},
	{ID: 2, Name: "Ручка", Price: 18},
	{ID: 3, Name: "Кружка", Price: 159.87},
	{ID: 4, Name: "Монитор", Price: 18000},
	{ID: 5, Name: PhoneProduct, Price: 9999.9},
	{ID: 6, Name: "Кофе", Price: 159},
}

var defaultOrders = []domain.Order{
	{ID: 1, ClientID: 2, ProductID: 2, Label: "Закупка 1"},
	{ID: 2, ClientID: 2, ProductID: 5, Label: "Закупка 2"},
	{ID: 3, ClientID: 2, ProductID: 1, Label: "Закупка 3"},
	{ID: 4, ClientID: 1, ProductID: 1, Label: "Закупка 4"},
	{ID: 5, ClientID: 1, ProductID: 3, Label: "Закупка 5"},
	{ID: 6, ClientID: 1, ProductID: 6, Label: "Закупка 6"},
	{ID: 7, ClientID: 1, ProductID: 2, Label: "Закупка 7"},
	{ID: 8, ClientID: 4, ProductID: 5, Label: "Закупка 8"},
	{ID: 9, ClientID: 3, ProductID: 6, Label: "Закупка 9"},
	{ID: 10, ClientID: 3, ProductID: 3, Label: "Закупка 10"},
	{ID: 11, ClientID: 1, ProductID: 5, Label: "Закупка 11"},
}

// Clients returns a copy of the seed clients.
func Clients() []domain.Client {
	return append([]domain.Client(nil), defaultClients...)
}

// Products returns a copy of the seed products.
func Products() []domain.Product {
	return append([]domain.Product(nil), defaultProducts...)
}

// Orders returns a copy of the seed orders.
func Orders() []domain.Order {
	return append([]domain.Order(nil), defaultOrders...)
}

func clientRows(cs []domain.Client) [][]any {
	rows := make([][]any, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []any{c.ID, c.Name})
	}
	return rows
}

func productRows(ps []domain.Product) [][]any {
	rows := make([][]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []any{p.ID, p.Name, p.Price})
	}
	return rows
}

func orderRows(orders []domain.Order) [][]any {
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []any{o.ID, o.ClientID, o.ProductID, o.Label})
	}
	return rows
}
