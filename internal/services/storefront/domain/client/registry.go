package client

import (
	"encoding/json"
	"errors"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// RegisterCommands registers client commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	for _, def := range []command.Definition{
		{Type: CommandTypeRegister, ValidatePayload: decodeAs[RegisterPayload]},
		{Type: CommandTypeLinkDevice, ValidatePayload: decodeAs[LinkDevicePayload]},
		{Type: CommandTypeAddNote, ValidatePayload: decodeAs[AddNotePayload]},
		{Type: CommandTypeMove, ValidatePayload: decodeAs[MovePayload]},
	} {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers client events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	for _, def := range []event.Definition{
		{Type: EventTypeRegistered, EntityType: entityType, ValidatePayload: decodeAs[RegisterPayload]},
		{Type: EventTypeDeviceLinked, EntityType: entityType, ValidatePayload: decodeAs[LinkDevicePayload]},
		{Type: EventTypeNoteAdded, EntityType: entityType, ValidatePayload: decodeAs[AddNotePayload]},
		{Type: EventTypeMoved, EntityType: entityType, ValidatePayload: decodeAs[MovePayload]},
	} {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// DeciderHandledCommands returns the command types Decide accepts.
func DeciderHandledCommands() []command.Type {
	return []command.Type{CommandTypeRegister, CommandTypeLinkDevice, CommandTypeAddNote, CommandTypeMove}
}

// FoldHandledTypes returns the event types Fold applies.
func FoldHandledTypes() []event.Type {
	return []event.Type{EventTypeRegistered, EventTypeDeviceLinked, EventTypeNoteAdded, EventTypeMoved}
}

func decodeAs[P any](raw json.RawMessage) error {
	var payload P
	return json.Unmarshal(raw, &payload)
}
