package avro

import (
	"time"

	domain "shop_api/internal/domain/order"
)

// EventToNative maps an order event onto the goavro native form matching
// OrderEventSchema. Union-typed fields are wrapped the way goavro
// expects: nil, or a single-key map naming the branch.
func EventToNative(evt domain.Event) map[string]interface{} {
	native := map[string]interface{}{
		"type":        evt.Type,
		"order_id":    evt.OrderID,
		"buyer":       nullableString(evt.Buyer),
		"address":     nullableString(evt.Address),
		"occurred_at": evt.OccurredAt.UTC().Format(time.RFC3339),
	}

	if len(evt.Lines) == 0 {
		native["lines"] = nil
		return native
	}

	lines := make([]interface{}, 0, len(evt.Lines))
	for _, l := range evt.Lines {
		lines = append(lines, map[string]interface{}{
			"product":  l.ProductID,
			"quantity": int64(l.Quantity),
			"price":    l.Price.StringFixed(2),
		})
	}
	native["lines"] = map[string]interface{}{"array": lines}

	return native
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return map[string]interface{}{"string": s}
}
