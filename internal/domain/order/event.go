package order

import "time"

const (
	EventOrderPlaced     = "order_placed"
	EventOrderDispatched = "order_dispatched"
)

// Event records an order lifecycle transition for downstream consumers.
type Event struct {
	Type       string
	OrderID    int64
	Buyer      string
	Address    string
	OccurredAt time.Time
	Lines      []Line
}
