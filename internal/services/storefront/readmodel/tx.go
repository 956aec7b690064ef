package readmodel

// Tx buffers read-model writes for a single Update call. Reads see the
// buffered writes first.
type Tx struct {
	base      *State
	inventory map[string]InventoryItem
	clients   map[string]Client
	devices   map[string]Device
	orders    map[string]Order
	dashboard *Dashboard
	skips     uint64
}

func newTx(base *State) *Tx {
	return &Tx{
		base:      base,
		inventory: make(map[string]InventoryItem),
		clients:   make(map[string]Client),
		devices:   make(map[string]Device),
		orders:    make(map[string]Order),
	}
}

// Inventory returns the inventory item with the given id.
func (tx *Tx) Inventory(id string) (InventoryItem, bool) {
	if item, ok := tx.inventory[id]; ok {
		return item, true
	}
	item, ok := tx.base.Inventory[id]
	return item, ok
}

// PutInventory stages an inventory write.
func (tx *Tx) PutInventory(item InventoryItem) {
	tx.inventory[item.ID] = item
}

// Client returns the client with the given id.
func (tx *Tx) Client(id string) (Client, bool) {
	if c, ok := tx.clients[id]; ok {
		return cloneClient(c), true
	}
	c, ok := tx.base.Clients[id]
	return cloneClient(c), ok
}

// PutClient stages a client write.
func (tx *Tx) PutClient(c Client) {
	tx.clients[c.ID] = cloneClient(c)
}

// Device returns the device with the given id.
func (tx *Tx) Device(id string) (Device, bool) {
	if d, ok := tx.devices[id]; ok {
		return d, true
	}
	d, ok := tx.base.Devices[id]
	return d, ok
}

// PutDevice stages a device write.
func (tx *Tx) PutDevice(d Device) {
	tx.devices[d.ID] = d
}

// Order returns the order with the given id.
func (tx *Tx) Order(id string) (Order, bool) {
	if o, ok := tx.orders[id]; ok {
		return cloneOrder(o), true
	}
	o, ok := tx.base.Orders[id]
	return cloneOrder(o), ok
}

// PutOrder stages an order write.
func (tx *Tx) PutOrder(o Order) {
	tx.orders[o.ID] = cloneOrder(o)
}

// Dashboard returns the dashboard counters.
func (tx *Tx) Dashboard() Dashboard {
	if tx.dashboard != nil {
		return *tx.dashboard
	}
	return tx.base.Dashboard
}

// SetDashboard stages new dashboard counters.
func (tx *Tx) SetDashboard(d Dashboard) {
	tx.dashboard = &d
}

// Skip records an event that referenced an unknown record.
func (tx *Tx) Skip() {
	tx.skips++
}

func (tx *Tx) commit() {
	for id, item := range tx.inventory {
		tx.base.Inventory[id] = item
	}
	for id, c := range tx.clients {
		tx.base.Clients[id] = c
	}
	for id, d := range tx.devices {
		tx.base.Devices[id] = d
	}
	for id, o := range tx.orders {
		tx.base.Orders[id] = o
	}
	if tx.dashboard != nil {
		tx.base.Dashboard = *tx.dashboard
	}
}
