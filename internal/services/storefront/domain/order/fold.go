package order

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// Fold applies an event to order state.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeCreated:
		var payload CreatePayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.Status = StatusCreated
		state.OrderID = payload.OrderID
		state.ClientID = payload.ClientID
		state.OrderType = payload.OrderType
		state.Items = nil
		state.Total = 0
	case EventTypeItemAdded:
		var payload AddItemPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.Items = append(append([]Item(nil), state.Items...), Item{
			ItemID:   payload.ItemID,
			Quantity: payload.Quantity,
			Price:    payload.Price,
		})
		state.Total += payload.Price * payload.Quantity
	case EventTypeConfirmed:
		state.Status = StatusConfirmed
	}
	return state, nil
}
