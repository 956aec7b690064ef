package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// Fold applies an event to inventory state.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeCreated:
		var payload CreatePayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.Created = true
		state.ItemID = payload.ItemID
		state.SKU = payload.SKU
		state.Name = payload.Name
		state.Cost = payload.Cost
		state.Stock = 0
	case EventTypeStockAdded, EventTypeStockRemoved:
		var payload StockPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.Stock += StockDelta(evt.Type, payload.Quantity)
	}
	return state, nil
}

// StockDelta returns the signed stock change an adjustment event represents.
func StockDelta(eventType event.Type, quantity int64) int64 {
	if eventType == EventTypeStockRemoved {
		return -quantity
	}
	return quantity
}
