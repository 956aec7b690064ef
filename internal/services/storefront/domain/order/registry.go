package order

import (
	"encoding/json"
	"errors"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// RegisterCommands registers order commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	for _, def := range []command.Definition{
		{Type: CommandTypeCreate, ValidatePayload: decodeAs[CreatePayload]},
		{Type: CommandTypeAddItem, ValidatePayload: decodeAs[AddItemPayload]},
		{Type: CommandTypeCheckout, ValidatePayload: decodeAs[CheckoutPayload]},
	} {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers order events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	for _, def := range []event.Definition{
		{Type: EventTypeCreated, EntityType: entityType, ValidatePayload: decodeAs[CreatePayload]},
		{Type: EventTypeItemAdded, EntityType: entityType, ValidatePayload: decodeAs[AddItemPayload]},
		{Type: EventTypeConfirmed, EntityType: entityType, ValidatePayload: decodeAs[ConfirmedPayload]},
	} {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// DeciderHandledCommands returns the command types Decide accepts.
func DeciderHandledCommands() []command.Type {
	return []command.Type{CommandTypeCreate, CommandTypeAddItem, CommandTypeCheckout}
}

// FoldHandledTypes returns the event types Fold applies.
func FoldHandledTypes() []event.Type {
	return []event.Type{EventTypeCreated, EventTypeItemAdded, EventTypeConfirmed}
}

func decodeAs[P any](raw json.RawMessage) error {
	var payload P
	return json.Unmarshal(raw, &payload)
}
