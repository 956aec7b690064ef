package client

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// Fold applies an event to client state.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeRegistered:
		var payload RegisterPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.Registered = true
		state.ClientID = payload.ClientID
		state.Age = payload.Age
		state.City = payload.City
	case EventTypeDeviceLinked:
		var payload LinkDevicePayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.ClientID = payload.ClientID
		if !state.HasDevice(payload.DeviceID) {
			state.DeviceIDs = append(append([]string(nil), state.DeviceIDs...), payload.DeviceID)
		}
	case EventTypeNoteAdded:
		state.NoteCount++
	case EventTypeMoved:
		var payload MovePayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.City = payload.City
	}
	return state, nil
}
