package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"shop_api/internal/domain/order"
)

// OrderRepository persists orders and their status transitions.
type OrderRepository interface {
	// Store writes the customer upsert, the order header and all lines in
	// one transaction and returns the storage-assigned order id. The
	// server-side creation timestamp is written back to o.CreatedAt.
	Store(ctx context.Context, o *order.Order) (int64, error)

	// FindByID reconstructs the full order view (header, customer, lines
	// with product titles). Returns order.ErrOrderNotFound if unknown.
	FindByID(ctx context.Context, id int64) (*order.Order, error)

	// MarkDispatched flips the dispatched flag of a committed order.
	MarkDispatched(ctx context.Context, id int64) error
}

// PriceLedger answers how many of the given (product id, claimed price)
// pairs match a stored product exactly at two decimal places.
type PriceLedger interface {
	CountMatching(ctx context.Context, pairs map[string]decimal.Decimal) (int, error)
}
