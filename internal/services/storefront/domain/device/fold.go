package device

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// Fold applies an event to device state.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeDetected:
		var payload DetectPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.Detected = true
		state.DeviceID = payload.DeviceID
		state.Browser = payload.Browser
		state.DeviceName = payload.DeviceName
		state.ViewportWidth = payload.ViewportWidth
	case EventTypeViewportChanged:
		var payload ResizePayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		state.ViewportWidth = payload.ViewportWidth
	}
	return state, nil
}
