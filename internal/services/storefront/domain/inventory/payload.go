package inventory

// CreatePayload captures the payload for inventory.create commands and inventory.created events.
type CreatePayload struct {
	ItemID string `json:"item_id"`
	SKU    string `json:"sku"`
	Name   string `json:"name"`
	Cost   int64  `json:"cost"`
}

// StockPayload captures the payload for stock adjustment commands and events.
type StockPayload struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}
