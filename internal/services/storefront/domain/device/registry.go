package device

import (
	"encoding/json"
	"errors"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// RegisterCommands registers device commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	if err := registry.Register(command.Definition{Type: CommandTypeDetect, ValidatePayload: decodeAs[DetectPayload]}); err != nil {
		return err
	}
	return registry.Register(command.Definition{Type: CommandTypeResize, ValidatePayload: decodeAs[ResizePayload]})
}

// RegisterEvents registers device events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	if err := registry.Register(event.Definition{Type: EventTypeDetected, EntityType: entityType, ValidatePayload: decodeAs[DetectPayload]}); err != nil {
		return err
	}
	return registry.Register(event.Definition{Type: EventTypeViewportChanged, EntityType: entityType, ValidatePayload: decodeAs[ResizePayload]})
}

// DeciderHandledCommands returns the command types Decide accepts.
func DeciderHandledCommands() []command.Type {
	return []command.Type{CommandTypeDetect, CommandTypeResize}
}

// FoldHandledTypes returns the event types Fold applies.
func FoldHandledTypes() []event.Type {
	return []event.Type{EventTypeDetected, EventTypeViewportChanged}
}

func decodeAs[P any](raw json.RawMessage) error {
	var payload P
	return json.Unmarshal(raw, &payload)
}
