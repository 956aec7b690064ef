// Package seed holds scripted command sequences used to populate a storefront
// with demo data.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/louisbranch/storefront/internal/services/storefront/domain/client"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/command"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/device"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/engine"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/inventory"
	"github.com/louisbranch/storefront/internal/services/storefront/domain/order"
)

// ActorID marks commands issued by the seeder.
const ActorID = "seed"

// ErrUnknownScenario indicates a scenario name with no definition.
var ErrUnknownScenario = errors.New("unknown seed scenario")

// Executor runs one command.
type Executor interface {
	Execute(ctx context.Context, cmd command.Command) (engine.Result, error)
}

// Step is one scripted command. When ExpectRejection is set the step passes
// only if the command is rejected with that code.
type Step struct {
	Type            command.Type
	EntityID        string
	Payload         any
	ExpectRejection string
}

// Scenario is a named sequence of steps.
type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

// Report summarizes a scenario run.
type Report struct {
	Scenario string
	Applied  int
	Rejected int
	Events   int
}

// Scenarios returns every built-in scenario sorted by name.
func Scenarios() []Scenario {
	out := []Scenario{purchaseScenario(), emptyCheckoutScenario(), catalogScenario()}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the named scenario.
func Lookup(name string) (Scenario, error) {
	for _, sc := range Scenarios() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
}

// Run executes every step of sc in order and stops at the first unexpected
// outcome.
func Run(ctx context.Context, exec Executor, sc Scenario) (Report, error) {
	if exec == nil {
		return Report{}, errors.New("seed executor is required")
	}
	report := Report{Scenario: sc.Name}
	for i, step := range sc.Steps {
		cmd, err := step.command()
		if err != nil {
			return report, fmt.Errorf("%s step %d: %w", sc.Name, i+1, err)
		}
		result, err := exec.Execute(ctx, cmd)
		if step.ExpectRejection != "" {
			if !rejectedWith(err, step.ExpectRejection) {
				return report, fmt.Errorf("%s step %d %s: expected rejection %s, got %v", sc.Name, i+1, step.Type, step.ExpectRejection, err)
			}
			report.Rejected++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("%s step %d %s: %w", sc.Name, i+1, step.Type, err)
		}
		report.Applied++
		report.Events += len(result.Decision.Events)
	}
	log.Printf("seed scenario done name=%s applied=%d rejected=%d events=%d", report.Scenario, report.Applied, report.Rejected, report.Events)
	return report, nil
}

func (s Step) command() (command.Command, error) {
	cmd := command.Command{Type: s.Type, EntityID: s.EntityID, ActorID: ActorID}
	if s.Payload != nil {
		payload, err := json.Marshal(s.Payload)
		if err != nil {
			return command.Command{}, fmt.Errorf("encode %s payload: %w", s.Type, err)
		}
		cmd.PayloadJSON = payload
	}
	return cmd, nil
}

func rejectedWith(err error, code string) bool {
	var rejection *engine.RejectionError
	if !errors.As(err, &rejection) {
		return false
	}
	for _, r := range rejection.Rejections {
		if r.Code == code {
			return true
		}
	}
	return false
}

// purchaseScenario is one confirmed purchase of a single lamp.
func purchaseScenario() Scenario {
	return Scenario{
		Name:        "purchase",
		Description: "stock a lamp, register a client, and confirm a one-item purchase",
		Steps: []Step{
			{Type: inventory.CommandTypeCreate, EntityID: "i-1", Payload: inventory.CreatePayload{Name: "Desk Lamp", Cost: 400}},
			{Type: inventory.CommandTypeAddStock, EntityID: "i-1", Payload: inventory.StockPayload{Quantity: 100}},
			{Type: client.CommandTypeRegister, EntityID: "c-1", Payload: client.RegisterPayload{Age: 30, City: "Calgary"}},
			{Type: order.CommandTypeCreate, EntityID: "o-1", Payload: order.CreatePayload{ClientID: "c-1", OrderType: order.TypePurchase}},
			{Type: order.CommandTypeAddItem, EntityID: "o-1", Payload: order.AddItemPayload{ItemID: "i-1", Quantity: 1, Price: 650}},
			{Type: order.CommandTypeCheckout, EntityID: "o-1"},
		},
	}
}

// emptyCheckoutScenario checks out an order with no lines.
func emptyCheckoutScenario() Scenario {
	return Scenario{
		Name:        "empty-checkout",
		Description: "create an order and check it out without items",
		Steps: []Step{
			{Type: order.CommandTypeCreate, EntityID: "o-empty", Payload: order.CreatePayload{ClientID: "c-empty"}},
			{Type: order.CommandTypeCheckout, EntityID: "o-empty", ExpectRejection: order.RejectionCodeOrderEmpty},
		},
	}
}

type catalogItem struct {
	id    string
	sku   string
	name  string
	cost  int64
	stock int64
}

var catalog = []catalogItem{
	{id: "i-chair", sku: "FRN-CHAIR", name: "Office Chair", cost: 9000, stock: 12},
	{id: "i-desk", sku: "FRN-DESK", name: "Standing Desk", cost: 32000, stock: 4},
	{id: "i-mug", sku: "KIT-MUG", name: "Coffee Mug", cost: 600, stock: 250},
	{id: "i-plant", sku: "DEC-PLANT", name: "Potted Fern", cost: 1800, stock: 30},
}

// catalogScenario stocks a small catalog and runs a few shoppers through it.
func catalogScenario() Scenario {
	var steps []Step
	for _, item := range catalog {
		steps = append(steps,
			Step{Type: inventory.CommandTypeCreate, EntityID: item.id, Payload: inventory.CreatePayload{SKU: item.sku, Name: item.name, Cost: item.cost}},
			Step{Type: inventory.CommandTypeAddStock, EntityID: item.id, Payload: inventory.StockPayload{Quantity: item.stock}},
		)
	}
	steps = append(steps,
		Step{Type: device.CommandTypeDetect, EntityID: "d-laptop", Payload: device.DetectPayload{Browser: "firefox", DeviceName: "laptop", ViewportWidth: 1440}},
		Step{Type: device.CommandTypeDetect, EntityID: "d-phone", Payload: device.DetectPayload{Browser: "safari", DeviceName: "phone", ViewportWidth: 390}},
		Step{Type: device.CommandTypeResize, EntityID: "d-laptop", Payload: device.ResizePayload{ViewportWidth: 1280}},

		Step{Type: client.CommandTypeRegister, EntityID: "c-ana", Payload: client.RegisterPayload{Age: 34, City: "Lisbon"}},
		Step{Type: client.CommandTypeLinkDevice, EntityID: "c-ana", Payload: client.LinkDevicePayload{DeviceID: "d-laptop"}},
		Step{Type: client.CommandTypeAddNote, EntityID: "c-ana", Payload: client.AddNotePayload{Note: "prefers email follow-up"}},
		Step{Type: client.CommandTypeRegister, EntityID: "c-ben", Payload: client.RegisterPayload{Age: 52, City: "Toronto"}},
		Step{Type: client.CommandTypeLinkDevice, EntityID: "c-ben", Payload: client.LinkDevicePayload{DeviceID: "d-phone"}},
		Step{Type: client.CommandTypeMove, EntityID: "c-ben", Payload: client.MovePayload{City: "Montreal"}},

		Step{Type: order.CommandTypeCreate, EntityID: "o-ana-1", Payload: order.CreatePayload{ClientID: "c-ana", OrderType: order.TypePurchase}},
		Step{Type: order.CommandTypeAddItem, EntityID: "o-ana-1", Payload: order.AddItemPayload{ItemID: "i-chair", Quantity: 1, Price: 14900}},
		Step{Type: order.CommandTypeAddItem, EntityID: "o-ana-1", Payload: order.AddItemPayload{ItemID: "i-mug", Quantity: 4, Price: 1200}},
		Step{Type: order.CommandTypeCheckout, EntityID: "o-ana-1"},

		Step{Type: order.CommandTypeCreate, EntityID: "o-ben-quote", Payload: order.CreatePayload{ClientID: "c-ben", OrderType: order.TypeQuote}},
		Step{Type: order.CommandTypeAddItem, EntityID: "o-ben-quote", Payload: order.AddItemPayload{ItemID: "i-desk", Quantity: 2, Price: 54900}},
		Step{Type: order.CommandTypeCheckout, EntityID: "o-ben-quote"},

		Step{Type: order.CommandTypeCreate, EntityID: "o-ben-1", Payload: order.CreatePayload{ClientID: "c-ben", OrderType: order.TypePurchase}},
		Step{Type: order.CommandTypeAddItem, EntityID: "o-ben-1", Payload: order.AddItemPayload{ItemID: "i-plant", Quantity: 3, Price: 2900}},
		Step{Type: order.CommandTypeCheckout, EntityID: "o-ben-1"},
		Step{Type: order.CommandTypeCheckout, EntityID: "o-ben-1", ExpectRejection: order.RejectionCodeOrderAlreadyConfirmed},

		Step{Type: inventory.CommandTypeRemoveStock, EntityID: "i-mug", Payload: inventory.StockPayload{Quantity: 10}},
	)
	return Scenario{
		Name:        "catalog",
		Description: "stock a small catalog, register shoppers with devices, and place orders and quotes",
		Steps:       steps,
	}
}
