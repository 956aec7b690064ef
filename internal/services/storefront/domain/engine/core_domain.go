package engine

import (
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/client"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/device"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/event"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/inventory"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/order"
)

// CoreDomain bundles the registration hooks and aggregate functions every
// domain package exports. Adding a domain means appending it to CoreDomains();
// the registry validators catch missing fold or decider coverage.
type CoreDomain struct {
	name                   string
	RegisterCommands       func(*command.Registry) error
	RegisterEvents         func(*event.Registry) error
	FoldHandledTypes       func() []event.Type
	DeciderHandledCommands func() []command.Type
	Fold                   func(state any, evt event.Event) (any, error)
	Decide                 func(state any, cmd command.Command, now func() time.Time) command.Decision
}

// Name returns the stream domain prefix, e.g. "order".
func (d CoreDomain) Name() string { return d.name }

// CoreDomains returns the authoritative list of domain registrations.
func CoreDomains() []CoreDomain {
	return []CoreDomain{
		newCoreDomain("inventory", inventory.RegisterCommands, inventory.RegisterEvents,
			inventory.FoldHandledTypes, inventory.DeciderHandledCommands, inventory.Fold, inventory.Decide),
		newCoreDomain("client", client.RegisterCommands, client.RegisterEvents,
			client.FoldHandledTypes, client.DeciderHandledCommands, client.Fold, client.Decide),
		newCoreDomain("device", device.RegisterCommands, device.RegisterEvents,
			device.FoldHandledTypes, device.DeciderHandledCommands, device.Fold, device.Decide),
		newCoreDomain("order", order.RegisterCommands, order.RegisterEvents,
			order.FoldHandledTypes, order.DeciderHandledCommands, order.Fold, order.Decide),
	}
}

// DomainFor returns the domain owning a stream or command prefix.
func DomainFor(name string) (CoreDomain, bool) {
	for _, domain := range CoreDomains() {
		if domain.name == name {
			return domain, true
		}
	}
	return CoreDomain{}, false
}

// newCoreDomain erases the typed aggregate state so the handler can treat every
// domain alike. A nil state stands for the zero value of S.
func newCoreDomain[S any](
	name string,
	registerCommands func(*command.Registry) error,
	registerEvents func(*event.Registry) error,
	foldHandled func() []event.Type,
	deciderHandled func() []command.Type,
	fold func(S, event.Event) (S, error),
	decide func(S, command.Command, func() time.Time) command.Decision,
) CoreDomain {
	return CoreDomain{
		name:                   name,
		RegisterCommands:       registerCommands,
		RegisterEvents:         registerEvents,
		FoldHandledTypes:       foldHandled,
		DeciderHandledCommands: deciderHandled,
		Fold: func(state any, evt event.Event) (any, error) {
			typed, _ := state.(S)
			next, err := fold(typed, evt)
			if err != nil {
				return state, err
			}
			return next, nil
		},
		Decide: func(state any, cmd command.Command, now func() time.Time) command.Decision {
			typed, _ := state.(S)
			return decide(typed, cmd, now)
		},
	}
}
