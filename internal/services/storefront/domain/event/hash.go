package event

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/core/encoding"
)

// EventHash computes the content hash of the stored identity of an event.
//
// The hash covers addressing, ordering and payload. It excludes the hash itself
// and the append-time ExpectedVersion.
func EventHash(evt Event) (string, error) {
	envelope := map[string]any{
		"id":             evt.ID,
		"stream_id":      evt.StreamID,
		"seq":            evt.Seq,
		"stream_version": evt.StreamVersion,
		"timestamp":      evt.Timestamp.UTC().Format(time.RFC3339Nano),
		"type":           string(evt.Type),
		"entity_type":    evt.EntityType,
		"entity_id":      evt.EntityID,
		"actor_id":       evt.ActorID,
		"request_id":     evt.RequestID,
		"payload":        json.RawMessage(evt.PayloadJSON),
	}
	return encoding.ContentHash(envelope)
}
