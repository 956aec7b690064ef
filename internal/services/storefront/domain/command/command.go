package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/core/encoding"
)

var (
	// ErrStreamIDRequired indicates a missing stream id.
	ErrStreamIDRequired = errors.New("stream id is required")
	// ErrTypeRequired indicates a missing command type.
	ErrTypeRequired = errors.New("command type is required")
	// ErrTypeUnknown indicates an unregistered command type.
	ErrTypeUnknown = errors.New("command type is not registered")
	// ErrStreamDomainMismatch indicates a stream id outside the command's domain.
	ErrStreamDomainMismatch = errors.New("stream id does not belong to command domain")
	// ErrEntityMismatch indicates an entity id that disagrees with the stream id.
	ErrEntityMismatch = errors.New("entity id does not match stream id")
	// ErrPayloadInvalid indicates malformed payload JSON.
	ErrPayloadInvalid = errors.New("payload json must be valid")
)

// Type identifies the command type string, e.g. "order.checkout".
type Type string

// Domain returns the domain prefix of the command type.
func (t Type) Domain() string {
	domain, _, _ := strings.Cut(string(t), ".")
	return domain
}

// Command captures the canonical command envelope.
type Command struct {
	StreamID    string
	Type        Type
	EntityID    string
	ActorID     string
	RequestID   string
	PayloadJSON []byte
}

// Definition registers metadata for a command type.
type Definition struct {
	Type            Type
	ValidatePayload PayloadValidator
}

// PayloadValidator validates a payload JSON document.
type PayloadValidator func(json.RawMessage) error

// Registry stores command definitions and validates commands.
type Registry struct {
	definitions map[Type]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[Type]Definition)}
}

// Register adds a new command type definition to the registry.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return errors.New("registry is required")
	}
	def.Type = Type(strings.TrimSpace(string(def.Type)))
	if def.Type == "" {
		return ErrTypeRequired
	}
	if r.definitions == nil {
		r.definitions = make(map[Type]Definition)
	}
	if _, exists := r.definitions[def.Type]; exists {
		return fmt.Errorf("command type already registered: %s", def.Type)
	}
	r.definitions[def.Type] = def
	return nil
}

// ValidateForDecision validates and normalizes a command before decision handling.
//
// An empty stream id is derived from the command domain and entity id.
func (r *Registry) ValidateForDecision(cmd Command) (Command, error) {
	if r == nil {
		return Command{}, errors.New("registry is required")
	}
	cmd.Type = Type(strings.TrimSpace(string(cmd.Type)))
	if cmd.Type == "" {
		return Command{}, ErrTypeRequired
	}
	def, ok := r.definitions[cmd.Type]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrTypeUnknown, cmd.Type)
	}
	cmd.EntityID = strings.TrimSpace(cmd.EntityID)
	cmd.StreamID = strings.TrimSpace(cmd.StreamID)
	if cmd.StreamID == "" {
		if cmd.EntityID == "" {
			return Command{}, ErrStreamIDRequired
		}
		cmd.StreamID = cmd.Type.Domain() + ":" + cmd.EntityID
	}
	domain, entityID, ok := strings.Cut(cmd.StreamID, ":")
	if !ok || entityID == "" {
		return Command{}, ErrStreamIDRequired
	}
	if domain != cmd.Type.Domain() {
		return Command{}, fmt.Errorf("%w: %s on %s", ErrStreamDomainMismatch, cmd.Type, cmd.StreamID)
	}
	if cmd.EntityID == "" {
		cmd.EntityID = entityID
	}
	if cmd.EntityID != entityID {
		return Command{}, fmt.Errorf("%w: %s on %s", ErrEntityMismatch, cmd.EntityID, cmd.StreamID)
	}
	cmd.ActorID = strings.TrimSpace(cmd.ActorID)
	cmd.RequestID = strings.TrimSpace(cmd.RequestID)

	if len(cmd.PayloadJSON) == 0 {
		cmd.PayloadJSON = []byte("{}")
	}
	if !json.Valid(cmd.PayloadJSON) {
		return Command{}, ErrPayloadInvalid
	}
	canonical, err := encoding.CanonicalJSON(json.RawMessage(cmd.PayloadJSON))
	if err != nil {
		return Command{}, fmt.Errorf("canonical payload json: %w", err)
	}
	cmd.PayloadJSON = canonical
	if def.ValidatePayload != nil {
		if err := def.ValidatePayload(json.RawMessage(cmd.PayloadJSON)); err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
		}
	}
	return cmd, nil
}

// Definition returns the command definition for a given type.
func (r *Registry) Definition(cmdType Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.definitions[Type(strings.TrimSpace(string(cmdType)))]
	return def, ok
}

// ListDefinitions returns a stable, sorted snapshot of registered definitions.
func (r *Registry) ListDefinitions() []Definition {
	if r == nil || len(r.definitions) == 0 {
		return nil
	}
	definitions := make([]Definition, 0, len(r.definitions))
	for _, definition := range r.definitions {
		definitions = append(definitions, definition)
	}
	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].Type < definitions[j].Type
	})
	return definitions
}

// ResolveEntityID reconciles an id carried in a payload with the command entity id.
// An empty payload id defers to the entity id; a different non-empty one is a mismatch.
func ResolveEntityID(payloadID, entityID string) (string, bool) {
	payloadID = strings.TrimSpace(payloadID)
	entityID = strings.TrimSpace(entityID)
	if payloadID == "" {
		return entityID, true
	}
	if entityID != "" && payloadID != entityID {
		return "", false
	}
	return payloadID, true
}
