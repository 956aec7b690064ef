package order

// Status is the lifecycle position of an order stream.
type Status string

const (
	StatusNew       Status = ""
	StatusCreated   Status = "created"
	StatusConfirmed Status = "confirmed"
)

const (
	// TypePurchase orders count toward revenue on confirmation.
	TypePurchase = "purchase"
	// TypeQuote orders confirm without touching revenue or stock.
	TypeQuote = "quote"
)

// Item is a line item folded from order.item_added.
type Item struct {
	ItemID   string
	Quantity int64
	Price    int64
}

// State captures order facts derived from domain events.
type State struct {
	Status    Status
	OrderID   string
	ClientID  string
	OrderType string
	Items     []Item
	Total     int64
}

// ItemCount returns the sum of line item quantities.
func (s State) ItemCount() int64 {
	var count int64
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}
