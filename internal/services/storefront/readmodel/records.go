package readmodel

import "time"

const (
	OrderStatusDraft     = "DRAFT"
	OrderStatusConfirmed = "CONFIRMED"
)

// InventoryItem is a catalog entry and its running stock level.
type InventoryItem struct {
	ID    string `json:"id"`
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Cost  int64  `json:"cost"`
	Stock int64  `json:"stock"`
}

// Client is a shopper. A client may exist with only devices or notes before
// registration.
type Client struct {
	ID           string   `json:"id"`
	Age          int      `json:"age"`
	City         string   `json:"city"`
	IsRegistered bool     `json:"is_registered"`
	Devices      []string `json:"devices"`
	CRMNotes     []string `json:"crm_notes"`
	TotalSpent   int64    `json:"total_spent"`
}

// HasDevice reports whether deviceID is linked to the client.
func (c Client) HasDevice(deviceID string) bool {
	for _, id := range c.Devices {
		if id == deviceID {
			return true
		}
	}
	return false
}

// Device is a browser/screen combination seen by the storefront.
type Device struct {
	ID            string    `json:"id"`
	Browser       string    `json:"browser"`
	DeviceName    string    `json:"device_name"`
	ViewportWidth int       `json:"viewport_width"`
	FirstSeen     time.Time `json:"first_seen"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"qty"`
	Price    int64  `json:"price"`
}

// Order is the projected view of an order stream.
type Order struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	ClientID    string      `json:"client_id"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	OrderTotal  int64       `json:"order_total"`
	CreatedAt   time.Time   `json:"created_at"`
	ConfirmedAt time.Time   `json:"confirmed_at,omitzero"`
}

// ItemCount returns the sum of line item quantities.
func (o Order) ItemCount() int64 {
	var count int64
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Dashboard holds the global sales counters.
type Dashboard struct {
	TotalRevenue         int64 `json:"total_revenue"`
	TotalOrdersConfirmed int64 `json:"total_orders_confirmed"`
	ItemsSold            int64 `json:"items_sold"`
}

// State is the keyed representation of the whole read model.
type State struct {
	Inventory map[string]InventoryItem
	Clients   map[string]Client
	Devices   map[string]Device
	Orders    map[string]Order
	Dashboard Dashboard
}

// NewState returns an empty state with initialized collections.
func NewState() State {
	return State{
		Inventory: make(map[string]InventoryItem),
		Clients:   make(map[string]Client),
		Devices:   make(map[string]Device),
		Orders:    make(map[string]Order),
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := NewState()
	for id, item := range s.Inventory {
		out.Inventory[id] = item
	}
	for id, c := range s.Clients {
		out.Clients[id] = cloneClient(c)
	}
	for id, d := range s.Devices {
		out.Devices[id] = d
	}
	for id, o := range s.Orders {
		out.Orders[id] = cloneOrder(o)
	}
	out.Dashboard = s.Dashboard
	return out
}

func cloneClient(c Client) Client {
	if c.Devices != nil {
		c.Devices = append([]string{}, c.Devices...)
	}
	if c.CRMNotes != nil {
		c.CRMNotes = append([]string{}, c.CRMNotes...)
	}
	return c
}

func cloneOrder(o Order) Order {
	if o.Items != nil {
		o.Items = append([]OrderItem{}, o.Items...)
	}
	return o
}
