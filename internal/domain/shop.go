package domain

// Client is a customer who places orders.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is an item that can be ordered.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order links one client to one product.
type Order struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	ProductID int64  `json:"productId"`
	Label     string `json:"label"`
}

// ClientTotal is the summed price of every product a client ordered.
type ClientTotal struct {
	Client string  `json:"client"`
	Total  float64 `json:"total"`
}

// ProductOrderCount is the number of orders placed for a product.
type ProductOrderCount struct {
	Product string `json:"product"`
	Orders  int64  `json:"orders"`
}
