package readmodel

import (
	"sort"
	"sync"
)

// Store is the in-memory read model.
type Store struct {
	mu    sync.RWMutex
	state State
	skips uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: NewState()}
}

// Update runs fn against a transaction and publishes its writes only when fn
// returns nil.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := newTx(&s.state)
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	s.skips += tx.skips
	return nil
}

// Load replaces the store contents with a copy of state.
func (s *Store) Load(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
}

// Export returns a deep copy of the store contents.
func (s *Store) Export() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Skips returns how many events were ignored because they referenced unknown records.
func (s *Store) Skips() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skips
}

// Inventory returns the inventory item with the given id.
func (s *Store) Inventory(id string) (InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.state.Inventory[id]
	return item, ok
}

// Client returns the client with the given id.
func (s *Store) Client(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.Clients[id]
	return cloneClient(c), ok
}

// Device returns the device with the given id.
func (s *Store) Device(id string) (Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.Devices[id]
	return d, ok
}

// Order returns the order with the given id.
func (s *Store) Order(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.state.Orders[id]
	return cloneOrder(o), ok
}

// Dashboard returns a copy of the dashboard counters.
func (s *Store) Dashboard() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Dashboard
}

// ListInventory returns inventory items matching pred, sorted by id. A nil
// pred matches everything.
func (s *Store) ListInventory(pred func(InventoryItem) bool) []InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.state.Inventory, pred, func(item InventoryItem) InventoryItem { return item })
}

// ListClients returns clients matching pred, sorted by id.
func (s *Store) ListClients(pred func(Client) bool) []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.state.Clients, pred, cloneClient)
}

// ListDevices returns devices matching pred, sorted by id.
func (s *Store) ListDevices(pred func(Device) bool) []Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.state.Devices, pred, func(d Device) Device { return d })
}

// ListOrders returns orders matching pred, sorted by id.
func (s *Store) ListOrders(pred func(Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.state.Orders, pred, cloneOrder)
}

func collect[T any](records map[string]T, pred func(T) bool, clone func(T) T) []T {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		record := records[id]
		if pred != nil && !pred(record) {
			continue
		}
		out = append(out, clone(record))
	}
	return out
}
