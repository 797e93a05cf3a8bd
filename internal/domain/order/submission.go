package order

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Submission mirrors the order placement request body. All fields are
// loosely typed so that shape problems surface as validation errors
// instead of decode failures where possible.
type Submission struct {
	Order *SubmittedOrder `json:"order"`
}

type SubmittedOrder struct {
	Buyer   *string         `json:"buyer"`
	Address *string         `json:"address"`
	Lines   []SubmittedLine `json:"lines"`
}

// SubmittedLine keeps Product untyped because clients may send the
// product id as either a JSON string or a number. Price is untyped so a
// quoted price can be rejected, only a JSON number is a price.
type SubmittedLine struct {
	Product interface{} `json:"product"`
	Qty     *float64    `json:"qty"`
	Price   interface{} `json:"price"`
}

// Validate checks the submission fail-fast in a fixed sequence and
// returns the normalized order: only buyer, address and the
// product/qty/price of each line survive, anything else a client sent
// (id, date, dispatched, ...) is dropped. Quantities are floored and
// prices converted to decimals.
func (s *Submission) Validate() (*Order, error) {
	if s.Order == nil {
		return nil, invalid("order data missing top-level 'order'")
	}
	if s.Order.Lines == nil {
		return nil, invalid("order missing 'lines' array")
	}
	if len(s.Order.Lines) == 0 {
		return nil, invalid("order 'lines' array must not be empty")
	}
	if s.Order.Buyer == nil || *s.Order.Buyer == "" {
		return nil, invalid("order missing 'buyer' string")
	}
	if s.Order.Address == nil || *s.Order.Address == "" {
		return nil, invalid("order missing 'address' string")
	}

	normalized := &Order{
		Buyer:   *s.Order.Buyer,
		Address: *s.Order.Address,
		Lines:   make([]Line, 0, len(s.Order.Lines)),
	}

	seen := make(map[string]struct{}, len(s.Order.Lines))
	for _, line := range s.Order.Lines {
		productID, ok := productIDString(line.Product)
		if !ok {
			return nil, invalid("order line missing 'product' ID string")
		}
		if line.Qty == nil {
			return nil, invalid("order line missing 'qty' number")
		}
		qty := int(math.Floor(*line.Qty))
		if qty < 1 {
			return nil, invalid("order line qty must be at least 1")
		}
		price, ok := line.Price.(float64)
		if !ok {
			return nil, invalid("order line missing 'price' number")
		}

		seen[productID] = struct{}{}

		normalized.Lines = append(normalized.Lines, Line{
			ProductID: productID,
			Quantity:  qty,
			Price:     decimal.NewFromFloat(price),
		})
	}

	// Duplicates are rejected, not merged: fewer distinct product ids
	// than lines means two lines named the same product.
	if len(seen) != len(normalized.Lines) {
		return nil, invalid("order cannot have multiple lines with the same product")
	}

	return normalized, nil
}

// productIDString normalizes a string or integer-like product id to its
// string form.
func productIDString(v interface{}) (string, bool) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		if id != math.Trunc(id) {
			return "", false
		}
		return strconv.FormatInt(int64(id), 10), true
	default:
		return "", false
	}
}
