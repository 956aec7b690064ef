package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
)

// Registries holds the validated command and event registries.
type Registries struct {
	Commands *command.Registry
	Events   *event.Registry
}

// BuildRegistries registers every core domain and validates coverage.
//
// This is the shared bootstrap point where all command/event contracts become a
// single validated registry consumed by the write handler and projections.
func BuildRegistries() (Registries, error) {
	commandRegistry := command.NewRegistry()
	eventRegistry := event.NewRegistry()

	for _, domain := range CoreDomains() {
		if err := domain.RegisterCommands(commandRegistry); err != nil {
			return Registries{}, fmt.Errorf("register %s commands: %w", domain.Name(), err)
		}
		if err := domain.RegisterEvents(eventRegistry); err != nil {
			return Registries{}, fmt.Errorf("register %s events: %w", domain.Name(), err)
		}
	}
	if err := ValidateFoldCoverage(eventRegistry); err != nil {
		return Registries{}, err
	}
	if err := ValidateDeciderCommandCoverage(commandRegistry); err != nil {
		return Registries{}, err
	}
	return Registries{Commands: commandRegistry, Events: eventRegistry}, nil
}

// ValidateFoldCoverage ensures every registered event type has a fold handler
// in the domain that owns it.
func ValidateFoldCoverage(events *event.Registry) error {
	handled := make(map[event.Type]string)
	for _, domain := range CoreDomains() {
		for _, typ := range domain.FoldHandledTypes() {
			handled[typ] = domain.Name()
		}
	}
	var missing []string
	for _, typ := range events.Types() {
		owner, ok := handled[typ]
		if !ok || owner != typ.Domain() {
			missing = append(missing, string(typ))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("event types missing fold handlers: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateDeciderCommandCoverage ensures every registered command type is
// handled by the decider of its domain.
func ValidateDeciderCommandCoverage(commands *command.Registry) error {
	handled := make(map[command.Type]string)
	for _, domain := range CoreDomains() {
		for _, typ := range domain.DeciderHandledCommands() {
			handled[typ] = domain.Name()
		}
	}
	var missing []string
	for _, def := range commands.ListDefinitions() {
		owner, ok := handled[def.Type]
		if !ok || owner != def.Type.Domain() {
			missing = append(missing, string(def.Type))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("command types missing decider handlers: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateProjectionCoverage ensures projection handlers and registered event
// types match exactly: no registered event goes unprojected and no handler
// exists for an unregistered type.
func ValidateProjectionCoverage(events *event.Registry, projected []event.Type) error {
	registered := make(map[event.Type]struct{})
	for _, typ := range events.Types() {
		registered[typ] = struct{}{}
	}
	handled := make(map[event.Type]struct{}, len(projected))
	var unknown []string
	for _, typ := range projected {
		handled[typ] = struct{}{}
		if _, ok := registered[typ]; !ok {
			unknown = append(unknown, string(typ))
		}
	}
	var missing []string
	for typ := range registered {
		if _, ok := handled[typ]; !ok {
			missing = append(missing, string(typ))
		}
	}
	sort.Strings(missing)
	sort.Strings(unknown)
	if len(missing) > 0 {
		return fmt.Errorf("event types missing projection handlers: %s", strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		return fmt.Errorf("projection handlers for unregistered event types: %s", strings.Join(unknown, ", "))
	}
	return nil
}
