package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a confirmed purchase: the buyer/address pair identifies the
// customer, lines hold the product-quantity-price triples. ID, CreatedAt
// and Dispatched are always server-assigned, never taken from a client.
type Order struct {
	ID         int64
	Buyer      string
	Address    string
	CreatedAt  time.Time
	Dispatched bool
	Lines      []Line
}

// Line is one product within an order. Price is the per-unit price the
// client submitted, which must equal the stored product price at
// placement time.
type Line struct {
	ProductID    string
	ProductTitle string
	Quantity     int
	Price        decimal.Decimal
}

// PricePairs returns the distinct (product id, claimed price) pairs of the
// order, the input to price reconciliation. Validation guarantees product
// ids are unique across lines.
func (o *Order) PricePairs() map[string]decimal.Decimal {
	pairs := make(map[string]decimal.Decimal, len(o.Lines))
	for _, l := range o.Lines {
		pairs[l.ProductID] = l.Price
	}
	return pairs
}
