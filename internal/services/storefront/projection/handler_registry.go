package projection

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/client"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/device"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/inventory"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/order"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

// handlerEntry applies one event type inside a store transaction.
type handlerEntry struct {
	apply func(tx *readmodel.Tx, evt event.Event) error
}

// handlers maps each projected event type to its handler entry.
var handlers = map[event.Type]handlerEntry{
	// inventory
	inventory.EventTypeCreated:      typed(applyInventoryCreated),
	inventory.EventTypeStockAdded:   typed(applyStockChanged),
	inventory.EventTypeStockRemoved: typed(applyStockChanged),

	// client
	client.EventTypeRegistered:   typed(applyClientRegistered),
	client.EventTypeDeviceLinked: typed(applyClientDeviceLinked),
	client.EventTypeNoteAdded:    typed(applyClientNoteAdded),
	client.EventTypeMoved:        typed(applyClientMoved),

	// device
	device.EventTypeDetected:        typed(applyDeviceDetected),
	device.EventTypeViewportChanged: typed(applyDeviceViewportChanged),

	// order
	order.EventTypeCreated:   typed(applyOrderCreated),
	order.EventTypeItemAdded: typed(applyOrderItemAdded),
	order.EventTypeConfirmed: typed(applyOrderConfirmed),
}

// typed wraps a handler so it receives a decoded payload.
func typed[P any](fn func(tx *readmodel.Tx, evt event.Event, payload P) error) handlerEntry {
	return handlerEntry{
		apply: func(tx *readmodel.Tx, evt event.Event) error {
			var payload P
			if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
				return fmt.Errorf("decode %s payload: %w", evt.Type, err)
			}
			return fn(tx, evt, payload)
		},
	}
}

// HandledTypes returns every event type the projector applies, sorted.
func HandledTypes() []event.Type {
	types := make([]event.Type, 0, len(handlers))
	for t := range handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
