package order

// CreatePayload captures the payload for order.create commands and order.created events.
type CreatePayload struct {
	OrderID   string `json:"order_id"`
	ClientID  string `json:"client_id"`
	OrderType string `json:"order_type"`
}

// AddItemPayload captures the payload for order.add_item commands and order.item_added events.
type AddItemPayload struct {
	OrderID  string `json:"order_id"`
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// CheckoutPayload captures the payload for order.checkout commands.
type CheckoutPayload struct {
	OrderID string `json:"order_id"`
}

// ConfirmedPayload captures the payload for order.confirmed events.
type ConfirmedPayload struct {
	OrderID    string `json:"order_id"`
	ClientID   string `json:"client_id"`
	OrderType  string `json:"order_type"`
	OrderTotal int64  `json:"order_total"`
	ItemCount  int64  `json:"item_count"`
}
