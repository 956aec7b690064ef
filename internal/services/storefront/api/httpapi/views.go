package httpapi

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

type eventView struct {
	ID            string          `json:"id"`
	StreamID      string          `json:"stream_id"`
	Seq           uint64          `json:"seq"`
	StreamVersion uint64          `json:"stream_version"`
	Hash          string          `json:"hash"`
	Timestamp     time.Time       `json:"timestamp"`
	Type          string          `json:"type"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	ActorID       string          `json:"actor_id,omitempty"`
	RequestID     string          `json:"request_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

func newEventView(evt event.Event) eventView {
	payload := json.RawMessage(evt.PayloadJSON)
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	return eventView{
		ID:            evt.ID,
		StreamID:      evt.StreamID,
		Seq:           evt.Seq,
		StreamVersion: evt.StreamVersion,
		Hash:          evt.Hash,
		Timestamp:     evt.Timestamp,
		Type:          string(evt.Type),
		EntityType:    evt.EntityType,
		EntityID:      evt.EntityID,
		ActorID:       evt.ActorID,
		RequestID:     evt.RequestID,
		Payload:       payload,
	}
}

// inventoryView adds the display stock, which never goes below zero.
type inventoryView struct {
	readmodel.InventoryItem
	Available int64 `json:"available"`
}

func newInventoryView(item readmodel.InventoryItem) inventoryView {
	return inventoryView{InventoryItem: item, Available: max(item.Stock, 0)}
}
