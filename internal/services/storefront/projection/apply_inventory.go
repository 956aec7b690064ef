package projection

import (
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/inventory"
	"github.com/louisbranch/storefront/internal/services/storefront/readmodel"
)

func applyInventoryCreated(tx *readmodel.Tx, evt event.Event, payload inventory.CreatePayload) error {
	id := payloadOrEntity(payload.ItemID, evt)
	item, _ := tx.Inventory(id)
	item.ID = id
	item.SKU = payload.SKU
	item.Name = payload.Name
	item.Cost = payload.Cost
	tx.PutInventory(item)
	return nil
}

// applyStockChanged applies a signed delta. Stock may go negative here; the
// API clamps it for display.
func applyStockChanged(tx *readmodel.Tx, evt event.Event, payload inventory.StockPayload) error {
	id := payloadOrEntity(payload.ItemID, evt)
	item, ok := tx.Inventory(id)
	if !ok {
		skip(tx, evt, "inventory", id)
		return nil
	}
	item.Stock += inventory.StockDelta(evt.Type, payload.Quantity)
	tx.PutInventory(item)
	return nil
}

func payloadOrEntity(payloadID string, evt event.Event) string {
	if payloadID != "" {
		return payloadID
	}
	return evt.EntityID
}
