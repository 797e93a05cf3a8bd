package avro

// OrderEventSchema is the Avro schema for order lifecycle events.
// Optional fields use union types ["null", "type"]; prices travel as
// fixed two-decimal strings so no precision is lost in transit.
const OrderEventSchema = `{
	"type": "record",
	"name": "OrderEvent",
	"namespace": "com.shop.order",
	"fields": [
		{"name": "type", "type": "string"},
		{"name": "order_id", "type": "long"},
		{"name": "buyer", "type": ["null", "string"], "default": null},
		{"name": "address", "type": ["null", "string"], "default": null},
		{"name": "occurred_at", "type": "string"},

		{"name": "lines", "type": ["null", {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderEventLine",
				"fields": [
					{"name": "product", "type": "string"},
					{"name": "quantity", "type": "long"},
					{"name": "price", "type": "string"}
				]
			}
		}], "default": null}
	]
}`
