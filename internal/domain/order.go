package domain

import "time"

// OrderStatusPaid is the only status produced by the payment flow.
const OrderStatusPaid = "paid"

// Order is an immutable record written once per completed payment.
type Order struct {
	ID              string                 `json:"id"`
	SessionID       *string                `json:"sessionId"`
	ExternalOrderID string                 `json:"orderId"`
	AmountINR       int64                  `json:"amountINR"`
	Items           []LineItem             `json:"items"`
	Status          string                 `json:"status"`
	Meta            map[string]interface{} `json:"meta"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// CloneMeta deep-copies order metadata, including nested JSON objects and
// arrays.
func CloneMeta(meta map[string]interface{}) map[string]interface{} {
	if meta == nil {
		return nil
	}
	out := make(map[string]interface{}, len(meta))
	for k, v := range meta {
		out[k] = cloneJSON(v)
	}
	return out
}

func cloneJSON(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		return CloneMeta(x)
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = cloneJSON(e)
		}
		return out
	default:
		return v
	}
}
