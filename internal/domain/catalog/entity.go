package catalog

import "github.com/shopspring/decimal"

// Category groups products; Priority controls listing order.
type Category struct {
	ID       string
	Name     string
	Priority int
}

// Supplier is the vendor a product is sourced from.
type Supplier struct {
	ID   int64
	Name string
}

// Product is read-only from the ordering side, its Price is the
// authoritative value submitted prices are reconciled against.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int
	CategoryID  string
	Supplier    string
}
