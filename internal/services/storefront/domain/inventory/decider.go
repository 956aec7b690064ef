package inventory

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

const (
	CommandTypeCreate      command.Type = "inventory.create"
	CommandTypeAddStock    command.Type = "inventory.add_stock"
	CommandTypeRemoveStock command.Type = "inventory.remove_stock"
	EventTypeCreated       event.Type   = "inventory.created"
	EventTypeStockAdded    event.Type   = "inventory.stock_added"
	EventTypeStockRemoved  event.Type   = "inventory.stock_removed"

	entityType = "inventory"

	RejectionCodeInventoryAlreadyExists   = "INVENTORY_ALREADY_EXISTS"
	RejectionCodeInventoryNotCreated      = "INVENTORY_NOT_CREATED"
	RejectionCodeInventoryIDMismatch      = "INVENTORY_ID_MISMATCH"
	RejectionCodeInventoryNameRequired    = "INVENTORY_NAME_REQUIRED"
	RejectionCodeInventoryCostInvalid     = "INVENTORY_COST_INVALID"
	RejectionCodeInventoryQuantityInvalid = "INVENTORY_QUANTITY_INVALID"
	rejectionCodeCommandTypeUnsupported   = "COMMAND_TYPE_UNSUPPORTED"
)

// Decide returns the decision for an inventory command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	switch cmd.Type {
	case CommandTypeCreate:
		if state.Created {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeInventoryAlreadyExists,
				Message: "inventory item already exists",
			})
		}
		var payload CreatePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		itemID, ok := command.ResolveEntityID(payload.ItemID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		name := strings.TrimSpace(payload.Name)
		if name == "" {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeInventoryNameRequired,
				Message: "name is required",
			})
		}
		if payload.Cost < 0 {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeInventoryCostInvalid,
				Message: "cost must not be negative",
			})
		}
		sku := strings.TrimSpace(payload.SKU)
		if sku == "" {
			sku = itemID
		}
		payloadJSON, _ := json.Marshal(CreatePayload{ItemID: itemID, SKU: sku, Name: name, Cost: payload.Cost})
		return command.Accept(command.NewEvent(cmd, EventTypeCreated, entityType, itemID, payloadJSON, now().UTC()))

	case CommandTypeAddStock, CommandTypeRemoveStock:
		if !state.Created {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeInventoryNotCreated,
				Message: "inventory item not created",
			})
		}
		var payload StockPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		itemID, ok := command.ResolveEntityID(payload.ItemID, cmd.EntityID)
		if !ok {
			return command.Reject(idMismatch())
		}
		if payload.Quantity <= 0 {
			return command.Reject(command.Rejection{
				Code:    RejectionCodeInventoryQuantityInvalid,
				Message: "quantity must be positive",
			})
		}
		eventType := EventTypeStockAdded
		if cmd.Type == CommandTypeRemoveStock {
			eventType = EventTypeStockRemoved
		}
		payloadJSON, _ := json.Marshal(StockPayload{ItemID: itemID, Quantity: payload.Quantity})
		return command.Accept(command.NewEvent(cmd, eventType, entityType, itemID, payloadJSON, now().UTC()))
	}
	return command.Reject(command.Rejection{
		Code:    rejectionCodeCommandTypeUnsupported,
		Message: "command type is not supported by inventory decider",
	})
}

func idMismatch() command.Rejection {
	return command.Rejection{
		Code:    RejectionCodeInventoryIDMismatch,
		Message: "payload item id does not match stream",
	}
}
