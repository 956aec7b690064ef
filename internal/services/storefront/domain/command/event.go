package command

import (
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// NewEvent builds an event.Event by copying the shared envelope fields from a
// command. Callers supply the event-specific type, entity addressing, payload,
// and timestamp.
func NewEvent(cmd Command, eventType event.Type, entityType, entityID string, payloadJSON []byte, now time.Time) event.Event {
	return event.Event{
		StreamID:    cmd.StreamID,
		Type:        eventType,
		Timestamp:   now,
		EntityType:  entityType,
		EntityID:    entityID,
		ActorID:     cmd.ActorID,
		RequestID:   cmd.RequestID,
		PayloadJSON: payloadJSON,
	}
}
