package inventory

import (
	"encoding/json"
	"errors"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// RegisterCommands registers inventory commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	for _, def := range []command.Definition{
		{Type: CommandTypeCreate, ValidatePayload: decodeAs[CreatePayload]},
		{Type: CommandTypeAddStock, ValidatePayload: decodeAs[StockPayload]},
		{Type: CommandTypeRemoveStock, ValidatePayload: decodeAs[StockPayload]},
	} {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers inventory events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	for _, def := range []event.Definition{
		{Type: EventTypeCreated, EntityType: entityType, ValidatePayload: decodeAs[CreatePayload]},
		{Type: EventTypeStockAdded, EntityType: entityType, ValidatePayload: decodeAs[StockPayload]},
		{Type: EventTypeStockRemoved, EntityType: entityType, ValidatePayload: decodeAs[StockPayload]},
	} {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// DeciderHandledCommands returns the command types Decide accepts.
func DeciderHandledCommands() []command.Type {
	return []command.Type{CommandTypeCreate, CommandTypeAddStock, CommandTypeRemoveStock}
}

// FoldHandledTypes returns the event types Fold applies.
func FoldHandledTypes() []event.Type {
	return []event.Type{EventTypeCreated, EventTypeStockAdded, EventTypeStockRemoved}
}

func decodeAs[P any](raw json.RawMessage) error {
	var payload P
	return json.Unmarshal(raw, &payload)
}
